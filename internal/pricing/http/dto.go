package http

import (
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/pricing"
)

const dateFormat = "2006-01-02"

// QuoteRequest is the payload for a price preview.
type QuoteRequest struct {
	FacilityID  string  `json:"facility_id" binding:"required,uuid"`
	ZoneID      string  `json:"zone_id" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date"`
	ActorType   string  `json:"actor_type" binding:"required"`
	TimeSlot    string  `json:"time_slot" binding:"required"`
	PricingMode string  `json:"pricing_mode" binding:"required,oneof=hourly daily fixed"`
	BookingType string  `json:"booking_type" binding:"omitempty,oneof=engangslan fastlan"`
	EventType   string  `json:"event_type"`
	Attendees   int     `json:"attendees" binding:"omitempty,min=0"`
	start, end  time.Time
}

// Validate parses the date fields and fills the internal time values.
func (r *QuoteRequest) Validate() error {
	var err error
	r.start, err = time.Parse(dateFormat, r.StartDate)
	if err != nil {
		return err
	}

	r.end = r.start
	if r.EndDate != "" {
		r.end, err = time.Parse(dateFormat, r.EndDate)
		if err != nil {
			return err
		}
	}
	return nil
}

// ToQuoteRequest maps the DTO onto the engine's request type.
func (r *QuoteRequest) ToQuoteRequest() pricing.QuoteRequest {
	bookingType := pricing.BookingType(r.BookingType)
	if bookingType == "" {
		bookingType = pricing.BookingOneTime
	}

	return pricing.QuoteRequest{
		FacilityID:  r.FacilityID,
		ZoneID:      r.ZoneID,
		StartDate:   r.start,
		EndDate:     r.end,
		ActorType:   pricing.ActorType(r.ActorType),
		TimeSlot:    r.TimeSlot,
		PricingMode: pricing.PricingMode(r.PricingMode),
		BookingType: bookingType,
		EventType:   r.EventType,
		Attendees:   r.Attendees,
	}
}

// CreateRuleRequest is the admin payload for adding a pricing rule.
type CreateRuleRequest struct {
	ZoneID           string  `json:"zone_id" binding:"required"`
	ActorType        string  `json:"actor_type" binding:"required"`
	BookingType      string  `json:"booking_type" binding:"omitempty,oneof=engangslan fastlan"`
	PricingMode      string  `json:"pricing_mode" binding:"required,oneof=hourly daily fixed"`
	TimeSlotCategory string  `json:"time_slot_category" binding:"omitempty,oneof=day evening"`
	DayType          string  `json:"day_type" binding:"omitempty,oneof=weekday weekend"`
	Price            float64 `json:"price" binding:"min=0"`
}

func (r *CreateRuleRequest) ToRule() pricing.Rule {
	return pricing.Rule{
		ZoneID:           r.ZoneID,
		ActorType:        pricing.ActorType(r.ActorType),
		BookingType:      pricing.BookingType(r.BookingType),
		PricingMode:      pricing.PricingMode(r.PricingMode),
		TimeSlotCategory: pricing.TimeSlotCategory(r.TimeSlotCategory),
		DayType:          pricing.DayType(r.DayType),
		Price:            r.Price,
	}
}

// RuleResponse is the API shape of a pricing rule.
type RuleResponse struct {
	ID               string  `json:"id"`
	ZoneID           string  `json:"zone_id"`
	ActorType        string  `json:"actor_type"`
	BookingType      string  `json:"booking_type,omitempty"`
	PricingMode      string  `json:"pricing_mode"`
	TimeSlotCategory string  `json:"time_slot_category,omitempty"`
	DayType          string  `json:"day_type,omitempty"`
	Price            float64 `json:"price"`
}

func NewRuleResponse(r pricing.Rule) RuleResponse {
	return RuleResponse{
		ID:               r.ID,
		ZoneID:           r.ZoneID,
		ActorType:        string(r.ActorType),
		BookingType:      string(r.BookingType),
		PricingMode:      string(r.PricingMode),
		TimeSlotCategory: string(r.TimeSlotCategory),
		DayType:          string(r.DayType),
		Price:            r.Price,
	}
}
