package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Monday 2025-06-02.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestQuoteFreeForClubs(t *testing.T) {
	engine := NewEngine([]Rule{
		{
			ID:          "r1",
			ZoneID:      "whole-facility",
			ActorType:   ActorClub,
			PricingMode: ModeHourly,
			Price:       0,
		},
	})

	calc := engine.Quote(QuoteRequest{
		ZoneID:      "whole-facility",
		StartDate:   monday,
		EndDate:     monday,
		ActorType:   ActorClub,
		TimeSlot:    "10:00-12:00",
		PricingMode: ModeHourly,
		BookingType: BookingOneTime,
	})

	require.False(t, calc.UsedFallback)
	require.Equal(t, float64(0), calc.TotalPrice)
	require.Equal(t, float64(0), calc.BasePrice)
	require.Equal(t, float64(2), calc.TotalHours)
	require.True(t, calc.RequiresApproval)
	require.Equal(t, "NOK", calc.Currency)
}

func TestQuoteRecurringDiscount(t *testing.T) {
	engine := NewEngine([]Rule{
		{
			ID:          "r1",
			ZoneID:      "whole-facility",
			ActorType:   ActorPrivatePerson,
			PricingMode: ModeHourly,
			Price:       100,
		},
	})

	calc := engine.Quote(QuoteRequest{
		ZoneID:      "whole-facility",
		StartDate:   monday,
		EndDate:     monday,
		ActorType:   ActorPrivatePerson,
		TimeSlot:    "10:00-12:00",
		PricingMode: ModeHourly,
		BookingType: BookingRecurring,
	})

	// 2h x 1 day x 100 kr = 200, minus 10% fastlan discount.
	require.Equal(t, float64(200), calc.Subtotal)
	require.Len(t, calc.Discounts, 1)
	require.Equal(t, float64(20), calc.Discounts[0].Amount)
	require.Equal(t, float64(180), calc.TotalPrice)
}

func TestQuoteFallback(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("hourly fallback", func(t *testing.T) {
		calc := engine.Quote(QuoteRequest{
			ZoneID:      "unknown-zone",
			StartDate:   monday,
			EndDate:     monday,
			ActorType:   ActorPrivatePerson,
			TimeSlot:    "10:00-11:00",
			PricingMode: ModeHourly,
			BookingType: BookingOneTime,
		})

		require.True(t, calc.UsedFallback)
		require.Equal(t, float64(450), calc.BasePrice)
		require.Equal(t, float64(450), calc.TotalPrice)
	})

	t.Run("daily fallback", func(t *testing.T) {
		calc := engine.Quote(QuoteRequest{
			ZoneID:      "unknown-zone",
			StartDate:   monday,
			EndDate:     monday.AddDate(0, 0, 1),
			ActorType:   ActorPrivatePerson,
			TimeSlot:    "10:00-11:00",
			PricingMode: ModeDaily,
			BookingType: BookingOneTime,
		})

		require.True(t, calc.UsedFallback)
		require.Equal(t, float64(900), calc.BasePrice)
		require.Equal(t, 2, calc.TotalDays)
		require.Equal(t, float64(1800), calc.TotalPrice)
	})
}

func TestQuoteSurcharges(t *testing.T) {
	engine := NewEngine([]Rule{
		{
			ID:          "plain",
			ZoneID:      "z1",
			ActorType:   ActorPrivatePerson,
			PricingMode: ModeHourly,
			Price:       100,
		},
		{
			ID:               "evening-priced",
			ZoneID:           "z2",
			ActorType:        ActorPrivatePerson,
			PricingMode:      ModeHourly,
			TimeSlotCategory: SlotEvening,
			Price:            150,
		},
	})

	t.Run("evening surcharge on unqualified rule", func(t *testing.T) {
		calc := engine.Quote(QuoteRequest{
			ZoneID:      "z1",
			StartDate:   monday,
			EndDate:     monday,
			ActorType:   ActorPrivatePerson,
			TimeSlot:    "18:00-20:00",
			PricingMode: ModeHourly,
			BookingType: BookingOneTime,
		})

		require.Len(t, calc.Surcharges, 1)
		require.Equal(t, "Kveldstillegg 15%", calc.Surcharges[0].Label)
		require.Equal(t, float64(200+30), calc.TotalPrice)
	})

	t.Run("no evening surcharge when rule already prices evenings", func(t *testing.T) {
		calc := engine.Quote(QuoteRequest{
			ZoneID:      "z2",
			StartDate:   monday,
			EndDate:     monday,
			ActorType:   ActorPrivatePerson,
			TimeSlot:    "18:00-20:00",
			PricingMode: ModeHourly,
			BookingType: BookingOneTime,
		})

		require.Equal(t, float64(150), calc.BasePrice)
		require.Empty(t, calc.Surcharges)
		require.Equal(t, float64(300), calc.TotalPrice)
	})

	t.Run("weekend surcharge", func(t *testing.T) {
		saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
		calc := engine.Quote(QuoteRequest{
			ZoneID:      "z1",
			StartDate:   saturday,
			EndDate:     saturday,
			ActorType:   ActorPrivatePerson,
			TimeSlot:    "10:00-12:00",
			PricingMode: ModeHourly,
			BookingType: BookingOneTime,
		})

		require.Len(t, calc.Surcharges, 1)
		require.Equal(t, "Helgetillegg 25%", calc.Surcharges[0].Label)
		require.Equal(t, float64(200+50), calc.TotalPrice)
	})
}

func TestSelectRuleSpecificity(t *testing.T) {
	generic := Rule{ID: "generic", ZoneID: "z1", ActorType: ActorPrivatePerson, PricingMode: ModeHourly, Price: 100}
	evening := Rule{ID: "evening", ZoneID: "z1", ActorType: ActorPrivatePerson, PricingMode: ModeHourly, TimeSlotCategory: SlotEvening, Price: 150}
	eveningWeekend := Rule{
		ID: "evening-weekend", ZoneID: "z1", ActorType: ActorPrivatePerson, PricingMode: ModeHourly,
		TimeSlotCategory: SlotEvening, DayType: DayWeekend, Price: 200,
	}

	engine := NewEngine([]Rule{generic, evening, eveningWeekend})

	t.Run("most qualifiers wins", func(t *testing.T) {
		rule, found := engine.selectRule("z1", ModeHourly, ActorPrivatePerson, BookingOneTime, SlotEvening, DayWeekend)
		require.True(t, found)
		require.Equal(t, "evening-weekend", rule.ID)
	})

	t.Run("partial qualifier match", func(t *testing.T) {
		rule, found := engine.selectRule("z1", ModeHourly, ActorPrivatePerson, BookingOneTime, SlotEvening, DayWeekday)
		require.True(t, found)
		require.Equal(t, "evening", rule.ID)
	})

	t.Run("falls back to generic", func(t *testing.T) {
		rule, found := engine.selectRule("z1", ModeHourly, ActorPrivatePerson, BookingOneTime, SlotDaytime, DayWeekday)
		require.True(t, found)
		require.Equal(t, "generic", rule.ID)
	})

	t.Run("no match for other actor", func(t *testing.T) {
		_, found := engine.selectRule("z1", ModeHourly, ActorClub, BookingOneTime, SlotDaytime, DayWeekday)
		require.False(t, found)
	})

	t.Run("equal specificity picks the cheaper rule", func(t *testing.T) {
		promo := Rule{
			ID: "evening-promo", ZoneID: "z1", ActorType: ActorPrivatePerson, PricingMode: ModeHourly,
			TimeSlotCategory: SlotEvening, Price: 120,
		}

		// The promotional rule is added after the standard one and must
		// still win its tie.
		withPromo := NewEngine([]Rule{generic, evening, promo})
		rule, found := withPromo.selectRule("z1", ModeHourly, ActorPrivatePerson, BookingOneTime, SlotEvening, DayWeekday)
		require.True(t, found)
		require.Equal(t, "evening-promo", rule.ID)
	})
}

func TestRequiresApproval(t *testing.T) {
	require.True(t, RequiresApproval(ActorClub, ""))
	require.True(t, RequiresApproval(ActorUmbrella, ""))
	require.True(t, RequiresApproval(ActorBusiness, ""))
	require.False(t, RequiresApproval(ActorPrivatePerson, ""))
	require.True(t, RequiresApproval(ActorPrivatePerson, "arrangement"))
}

func TestQuoteFixedMode(t *testing.T) {
	engine := NewEngine([]Rule{
		{ID: "pkg", ZoneID: "z1", ActorType: ActorPrivatePerson, PricingMode: ModeFixed, Price: 2500},
	})

	calc := engine.Quote(QuoteRequest{
		ZoneID:      "z1",
		StartDate:   monday,
		EndDate:     monday.AddDate(0, 0, 2),
		ActorType:   ActorPrivatePerson,
		TimeSlot:    "10:00-16:00",
		PricingMode: ModeFixed,
		BookingType: BookingOneTime,
	})

	require.Equal(t, float64(2500), calc.Subtotal)
	require.Equal(t, float64(2500), calc.TotalPrice)
}
