package pricing

import "errors"

var (
	ErrZoneRequired  = errors.New("zone_id is required")
	ErrInvalidActor  = errors.New("invalid actor type")
	ErrInvalidMode   = errors.New("invalid pricing mode")
	ErrInvalidPeriod = errors.New("end date must not be before start date")
)

// ActorType identifies who is booking, mirroring the municipal actor
// categories used across the booking forms.
type ActorType string

const (
	ActorPrivatePerson ActorType = "privat-person"
	ActorClub          ActorType = "lag-foreninger"
	ActorUmbrella      ActorType = "paraply"
	ActorBusiness      ActorType = "privat-bedrift"
)

// ValidActorTypes lists the accepted actor type values.
var ValidActorTypes = []ActorType{ActorPrivatePerson, ActorClub, ActorUmbrella, ActorBusiness}

// BookingType distinguishes one-off loans from fixed recurring leases.
type BookingType string

const (
	BookingOneTime   BookingType = "engangslan"
	BookingRecurring BookingType = "fastlan"
)

// PricingMode selects the charging model of a rule.
type PricingMode string

const (
	ModeHourly PricingMode = "hourly"
	ModeDaily  PricingMode = "daily"
	ModeFixed  PricingMode = "fixed"
)

// DayType and TimeSlotCategory are optional rule qualifiers. An empty
// value means the rule applies regardless of that dimension.
type DayType string

const (
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
)

type TimeSlotCategory string

const (
	SlotDaytime TimeSlotCategory = "day"
	SlotEvening TimeSlotCategory = "evening"
)

// Rule is one row of static pricing configuration for a zone. Rules are
// selected by (mode, actor type) and ranked by how many of their optional
// qualifiers match the requested slot; they are never mutated at runtime.
type Rule struct {
	ID               string
	ZoneID           string
	ActorType        ActorType
	BookingType      BookingType
	PricingMode      PricingMode
	TimeSlotCategory TimeSlotCategory // optional, "" = any time of day
	DayType          DayType          // optional, "" = any day
	Price            float64
}

// Line is one labeled entry of a price breakdown.
type Line struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Calculation is the pure result of a price quote. UsedFallback marks a
// quote that had to fall back to the standard rate because no rule or zone
// configuration matched, so callers can tell a configured price from a
// fallback one without changing the default behavior.
type Calculation struct {
	BasePrice        float64 `json:"base_price"`
	TotalHours       float64 `json:"total_hours"`
	TotalDays        int     `json:"total_days"`
	Subtotal         float64 `json:"subtotal"`
	Discounts        []Line  `json:"discounts"`
	Surcharges       []Line  `json:"surcharges"`
	Breakdown        []Line  `json:"breakdown"`
	TotalPrice       float64 `json:"total_price"`
	RequiresApproval bool    `json:"requires_approval"`
	UsedFallback     bool    `json:"used_fallback"`
	Currency         string  `json:"currency"`
}
