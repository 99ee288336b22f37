package http

import (
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/booking"
	"github.com/lokalbooking/facility-booking-backend/internal/conflict"
	facHttp "github.com/lokalbooking/facility-booking-backend/internal/facility/http"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/request"
	"github.com/lokalbooking/facility-booking-backend/internal/pricing"
)

const dateFormat = "2006-01-02"

// CreateBookingRequest is the JSON body for creating a booking or running a
// conflict check. Dates come in as plain "2006-01-02" strings; Validate
// parses them.
type CreateBookingRequest struct {
	FacilityID     string  `json:"facility_id" binding:"required,uuid"`
	ZoneID         string  `json:"zone_id" binding:"required,uuid"`
	StartDate      string  `json:"start_date" binding:"required"`
	TimeSlot       string  `json:"time_slot" binding:"required"`
	Mode           string  `json:"mode" binding:"required,oneof=one-time date-range recurring"`
	EndDate        *string `json:"end_date"`
	RecurrenceRule string  `json:"recurrence_rule"`
	ActorType      string  `json:"actor_type" binding:"required"`
	EventType      *string `json:"event_type"`
	Attendees      int     `json:"attendees" binding:"omitempty,min=1"`
	PricingMode    string  `json:"pricing_mode" binding:"omitempty,oneof=hourly daily fixed"`

	start time.Time
	end   *time.Time
}

// Validate parses the date strings.
func (r *CreateBookingRequest) Validate() error {
	var err error
	r.start, err = time.Parse(dateFormat, r.StartDate)
	if err != nil {
		return booking.ErrInvalidDateRange
	}
	if r.EndDate != nil {
		end, err := time.Parse(dateFormat, *r.EndDate)
		if err != nil {
			return booking.ErrInvalidDateRange
		}
		r.end = &end
	}
	return nil
}

func (r *CreateBookingRequest) ToCreateRequest(userID string) booking.CreateRequest {
	return booking.CreateRequest{
		UserID:         userID,
		FacilityID:     r.FacilityID,
		ZoneID:         r.ZoneID,
		StartDate:      r.start,
		TimeSlot:       r.TimeSlot,
		Mode:           conflict.Mode(r.Mode),
		EndDate:        r.end,
		RecurrenceRule: r.RecurrenceRule,
		ActorType:      pricing.ActorType(r.ActorType),
		EventType:      r.EventType,
		Attendees:      r.Attendees,
		PricingMode:    pricing.PricingMode(r.PricingMode),
	}
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	FacilityID string  `form:"facility_id" binding:"omitempty,uuid"`
	Status     string  `form:"status" binding:"omitempty,oneof=pending confirmed cancelled rejected"`
	UserID     string  `form:"user_id" binding:"omitempty,uuid"`
	From       *string `form:"from"`
	To         *string `form:"to"`
	SortBy     string  `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`

	from *time.Time
	to   *time.Time
}

// Validate parses the date strings and checks their ordering.
func (r *ListBookingsRequest) Validate() error {
	if r.From != nil {
		t, err := time.Parse(dateFormat, *r.From)
		if err != nil {
			return booking.ErrInvalidDateRange
		}
		r.from = &t
	}
	if r.To != nil {
		t, err := time.Parse(dateFormat, *r.To)
		if err != nil {
			return booking.ErrInvalidDateRange
		}
		r.to = &t
	}
	if r.from != nil && r.to != nil && r.from.After(*r.to) {
		return booking.ErrInvalidDateRange
	}
	return nil
}

type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID               string              `json:"id"`
	Facility         facHttp.FacilityTag `json:"facility"`
	Zone             facHttp.FacilityTag `json:"zone"`
	User             UserTag             `json:"user"`
	StartDate        string              `json:"start_date"`
	TimeSlot         string              `json:"time_slot"`
	Mode             string              `json:"mode"`
	EndDate          *string             `json:"end_date,omitempty"`
	RecurrenceRule   *string             `json:"recurrence_rule,omitempty"`
	StartTime        time.Time           `json:"start_time"`
	EndTime          time.Time           `json:"end_time"`
	ActorType        string              `json:"actor_type"`
	EventType        *string             `json:"event_type,omitempty"`
	Attendees        int                 `json:"attendees,omitempty"`
	Status           string              `json:"status"`
	TotalPrice       float64             `json:"total_price"`
	Currency         string              `json:"currency"`
	PriceFallback    bool                `json:"price_fallback,omitempty"`
	RequiresApproval bool                `json:"requires_approval"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	var endDate *string
	if b.EndDate != nil {
		s := b.EndDate.Format(dateFormat)
		endDate = &s
	}

	return BookingResponse{
		ID:               b.ID,
		Facility:         facHttp.FacilityTag{ID: b.FacilityID, Name: b.FacilityName},
		Zone:             facHttp.FacilityTag{ID: b.ZoneID, Name: b.ZoneName},
		User:             UserTag{ID: b.UserID, Name: b.UserName},
		StartDate:        b.StartDate.Format(dateFormat),
		TimeSlot:         b.TimeSlot,
		Mode:             string(b.Mode),
		EndDate:          endDate,
		RecurrenceRule:   b.RecurrenceRule,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		ActorType:        string(b.ActorType),
		EventType:        b.EventType,
		Attendees:        b.Attendees,
		Status:           string(b.Status),
		TotalPrice:       b.TotalPrice,
		Currency:         b.Currency,
		PriceFallback:    b.PriceFallback,
		RequiresApproval: b.RequiresApproval,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

type AlternativeWindow struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ConflictResponse is the body served on a 409 and by the conflict-check
// endpoint.
type ConflictResponse struct {
	HasConflict      bool                `json:"has_conflict"`
	InvalidProposal  bool                `json:"invalid_proposal,omitempty"`
	ConflictingDates []string            `json:"conflicting_dates"`
	Alternatives     []AlternativeWindow `json:"alternative_times"`
	Recommendations  []string            `json:"recommendations"`
}

func NewConflictResponse(r *booking.ConflictReport) ConflictResponse {
	dates := make([]string, len(r.ConflictingDates))
	for i, d := range r.ConflictingDates {
		dates[i] = d.Format(dateFormat)
	}

	alts := make([]AlternativeWindow, len(r.Alternatives))
	for i, w := range r.Alternatives {
		alts[i] = AlternativeWindow{StartTime: w.Start, EndTime: w.End}
	}

	recs := r.Recommendations
	if recs == nil {
		recs = []string{}
	}

	return ConflictResponse{
		HasConflict:      r.HasConflict,
		InvalidProposal:  r.InvalidProposal,
		ConflictingDates: dates,
		Alternatives:     alts,
		Recommendations:  recs,
	}
}
