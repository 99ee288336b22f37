package booking

import (
	"net/http"
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/conflict"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/apperror"
	"github.com/lokalbooking/facility-booking-backend/internal/pricing"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeSlot   = apperror.New(http.StatusBadRequest, "time slot must be on the form HH:MM-HH:MM with end after start")
	ErrInvalidMode       = apperror.New(http.StatusBadRequest, "invalid booking mode")
	ErrInvalidActor      = apperror.New(http.StatusBadRequest, "invalid actor type")
	ErrInvalidRecurrence = apperror.New(http.StatusBadRequest, "recurring bookings need a recurrence rule and an end date")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "end date must not be before start date")
	ErrStartDatePast     = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrFacilityNotFound  = apperror.New(http.StatusNotFound, "facility not found")
	ErrZoneNotFound      = apperror.New(http.StatusNotFound, "zone not found")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// Booking is a stored facility reservation. The proposal fields (mode,
// slot string, recurrence rule, end date) are persisted alongside the
// first occurrence's concrete timestamps, so stored recurring bookings can
// be re-expanded when later proposals are checked against them.
type Booking struct {
	ID           string
	FacilityID   string
	FacilityName string
	ZoneID       string
	ZoneName     string
	UserID       string
	UserName     string

	StartDate      time.Time
	TimeSlot       string
	Mode           conflict.Mode
	EndDate        *time.Time
	RecurrenceRule *string

	// First occurrence, concrete.
	StartTime time.Time
	EndTime   time.Time

	ActorType pricing.ActorType
	EventType *string
	Attendees int

	Status           Status
	TotalPrice       float64
	Currency         string
	PriceFallback    bool
	RequiresApproval bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled reports whether the booking is still in a cancellable state.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsActive reports whether the booking blocks other reservations.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID     string
	FacilityID string
	Status     string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
