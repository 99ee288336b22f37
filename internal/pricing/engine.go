package pricing

import (
	"fmt"
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/timeslot"
)

// Fallback rates applied when no rule or zone configuration matches, so a
// price can always be displayed even with incomplete configuration.
const (
	fallbackHourlyRate = 450
	fallbackDailyRate  = 900

	currencyNOK = "NOK"

	recurringDiscountRate = 0.10
	umbrellaDiscountRate  = 0.15
	weekendSurchargeRate  = 0.25
	eveningSurchargeRate  = 0.15
)

// QuoteRequest carries everything the engine needs to price a booking.
type QuoteRequest struct {
	FacilityID  string
	ZoneID      string
	StartDate   time.Time
	EndDate     time.Time
	ActorType   ActorType
	TimeSlot    string
	PricingMode PricingMode
	BookingType BookingType
	EventType   string
	Attendees   int
}

// Engine evaluates pricing rules. It is constructed with an explicit rule
// set instead of reading shared package state, so tests and callers can
// run several configurations side by side.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the given rule set.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Quote computes the full price breakdown for a request. It never fails:
// a missing rule or zone degrades to the standard fallback rate, tagged
// with UsedFallback on the result.
func (e *Engine) Quote(req QuoteRequest) Calculation {
	hours := slotHours(req.StartDate, req.TimeSlot)
	days := periodDays(req.StartDate, req.EndDate)
	slotCat := categorizeSlot(req.TimeSlot)
	dayType := categorizeDay(req.StartDate)

	calc := Calculation{
		TotalHours:       hours,
		TotalDays:        days,
		Currency:         currencyNOK,
		RequiresApproval: RequiresApproval(req.ActorType, req.EventType),
	}

	rule, found := e.selectRule(req.ZoneID, req.PricingMode, req.ActorType, req.BookingType, slotCat, dayType)
	if found {
		calc.BasePrice = rule.Price
	} else {
		calc.UsedFallback = true
		if req.PricingMode == ModeDaily {
			calc.BasePrice = fallbackDailyRate
		} else {
			calc.BasePrice = fallbackHourlyRate
		}
	}

	switch req.PricingMode {
	case ModeDaily:
		calc.Subtotal = float64(days) * calc.BasePrice
		calc.Breakdown = append(calc.Breakdown, Line{
			Label:  fmt.Sprintf("Grunnpris %d dag(er) à %.0f kr", days, calc.BasePrice),
			Amount: calc.Subtotal,
		})
	case ModeFixed:
		calc.Subtotal = calc.BasePrice
		calc.Breakdown = append(calc.Breakdown, Line{
			Label:  "Fastpris",
			Amount: calc.Subtotal,
		})
	default: // hourly
		calc.Subtotal = hours * float64(days) * calc.BasePrice
		calc.Breakdown = append(calc.Breakdown, Line{
			Label:  fmt.Sprintf("Grunnpris %.1f time(r) x %d dag(er) à %.0f kr", hours, days, calc.BasePrice),
			Amount: calc.Subtotal,
		})
	}

	total := calc.Subtotal

	// Adjustments run in a fixed order so the breakdown is reproducible:
	// recurring discount, actor discount, then surcharges.
	if req.BookingType == BookingRecurring {
		amount := calc.Subtotal * recurringDiscountRate
		calc.Discounts = append(calc.Discounts, Line{Label: "Fastlånsrabatt 10%", Amount: amount})
		total -= amount
	}

	if req.ActorType == ActorUmbrella {
		amount := calc.Subtotal * umbrellaDiscountRate
		calc.Discounts = append(calc.Discounts, Line{Label: "Paraplyrabatt 15%", Amount: amount})
		total -= amount
	}

	// Surcharges only apply when the selected rule did not already price
	// that dimension explicitly.
	if dayType == DayWeekend && (!found || rule.DayType == "") {
		amount := calc.Subtotal * weekendSurchargeRate
		calc.Surcharges = append(calc.Surcharges, Line{Label: "Helgetillegg 25%", Amount: amount})
		total += amount
	}

	if slotCat == SlotEvening && (!found || rule.TimeSlotCategory == "") {
		amount := calc.Subtotal * eveningSurchargeRate
		calc.Surcharges = append(calc.Surcharges, Line{Label: "Kveldstillegg 15%", Amount: amount})
		total += amount
	}

	calc.Breakdown = append(calc.Breakdown, calc.Discounts...)
	calc.Breakdown = append(calc.Breakdown, calc.Surcharges...)

	if total < 0 {
		total = 0
	}
	calc.TotalPrice = total

	return calc
}

// selectRule picks the most specific applicable rule: candidates must match
// zone, pricing mode and actor type, and their optional qualifiers
// (booking type, time slot category, day type) must either be empty or
// match the request. Specificity is the count of non-empty qualifiers that
// matched; on a tie the cheaper rule wins, so adding a promotional rule
// can never raise an existing quote.
func (e *Engine) selectRule(zoneID string, mode PricingMode, actor ActorType, bookingType BookingType, slotCat TimeSlotCategory, dayType DayType) (Rule, bool) {
	var (
		best      Rule
		bestScore = -1
	)

	for _, r := range e.rules {
		if r.ZoneID != zoneID || r.PricingMode != mode || r.ActorType != actor {
			continue
		}
		if r.BookingType != "" && r.BookingType != bookingType {
			continue
		}
		if r.TimeSlotCategory != "" && r.TimeSlotCategory != slotCat {
			continue
		}
		if r.DayType != "" && r.DayType != dayType {
			continue
		}

		score := 0
		if r.BookingType != "" {
			score++
		}
		if r.TimeSlotCategory != "" {
			score++
		}
		if r.DayType != "" {
			score++
		}

		if score > bestScore || (score == bestScore && r.Price < best.Price) {
			best = r
			bestScore = score
		}
	}

	return best, bestScore >= 0
}

// RequiresApproval reports whether a booking from this actor needs manual
// approval before confirmation. Clubs, umbrella organizations and
// businesses always do; private persons only for public events.
func RequiresApproval(actor ActorType, eventType string) bool {
	switch actor {
	case ActorClub, ActorUmbrella, ActorBusiness:
		return true
	case ActorPrivatePerson:
		return eventType == "arrangement"
	default:
		return false
	}
}

// slotHours returns the slot duration in hours, or 0 for malformed slots.
func slotHours(date time.Time, slot string) float64 {
	iv, ok := timeslot.Parse(date, slot)
	if !ok {
		return 0
	}
	return float64(iv.DurationMinutes()) / 60
}

// periodDays counts calendar days from start to end inclusive, minimum 1.
func periodDays(start, end time.Time) int {
	if end.Before(start) {
		return 1
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// categorizeSlot buckets a slot by its start hour. 17:00-22:00 counts as
// evening, everything else as daytime.
func categorizeSlot(slot string) TimeSlotCategory {
	iv, ok := timeslot.Parse(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), slot)
	if !ok {
		return SlotDaytime
	}
	if h := iv.Start.Hour(); h >= 17 && h < 22 {
		return SlotEvening
	}
	return SlotDaytime
}

func categorizeDay(date time.Time) DayType {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return DayWeekend
	}
	return DayWeekday
}
