package booking

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/conflict"
	"github.com/lokalbooking/facility-booking-backend/internal/facility"
	"github.com/lokalbooking/facility-booking-backend/internal/pricing"
	"github.com/lokalbooking/facility-booking-backend/internal/recurrence"
	"github.com/lokalbooking/facility-booking-backend/internal/timeslot"
)

// maxAlternativeFacilities bounds how many other facilities are fetched
// for conflict recommendations.
const maxAlternativeFacilities = 6

type CreateRequest struct {
	UserID         string
	FacilityID     string
	ZoneID         string
	StartDate      time.Time
	TimeSlot       string
	Mode           conflict.Mode
	EndDate        *time.Time
	RecurrenceRule string
	ActorType      pricing.ActorType
	EventType      *string
	Attendees      int
	PricingMode    pricing.PricingMode
}

// ConflictReport is what callers get when a proposal collides with
// existing bookings: the verdict plus suggested ways out.
type ConflictReport struct {
	HasConflict      bool
	InvalidProposal  bool
	ConflictingDates []time.Time
	Alternatives     []conflict.Window
	Recommendations  []string
}

type Service interface {
	// Create validates and prices a proposal, checks it for conflicts and
	// persists it. On a conflict it returns ErrTimeConflict together with
	// a report the HTTP layer can serve as the 409 body.
	Create(ctx context.Context, req CreateRequest) (*Booking, *ConflictReport, error)

	// CheckConflict is the dry-run variant: same expansion and scan,
	// nothing persisted.
	CheckConflict(ctx context.Context, req CreateRequest) (*ConflictReport, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Cancel(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error)
	Approve(ctx context.Context, id string) (*Booking, error)
	Reject(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo       Repository
	facService facility.Service
	priceSvc   pricing.Service
	now        func() time.Time
}

func NewService(repo Repository, facService facility.Service, priceSvc pricing.Service) Service {
	return &service{
		repo:       repo,
		facService: facService,
		priceSvc:   priceSvc,
		now:        time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, *ConflictReport, error) {
	if err := s.validate(req); err != nil {
		return nil, nil, err
	}

	fac, zone, err := s.resolveFacility(ctx, req.FacilityID, req.ZoneID)
	if err != nil {
		return nil, nil, err
	}

	report, firstSlot, err := s.runConflictCheck(ctx, req, fac)
	if err != nil {
		return nil, nil, err
	}
	if report.HasConflict {
		return nil, report, ErrTimeConflict
	}

	calc, err := s.priceSvc.Quote(ctx, pricing.QuoteRequest{
		FacilityID:  req.FacilityID,
		ZoneID:      req.ZoneID,
		StartDate:   req.StartDate,
		EndDate:     endOrStart(req),
		ActorType:   req.ActorType,
		TimeSlot:    req.TimeSlot,
		PricingMode: pricingModeOrDefault(req.PricingMode),
		BookingType: bookingTypeFor(req.Mode),
		EventType:   derefOrEmpty(req.EventType),
		Attendees:   req.Attendees,
	})
	if err != nil {
		return nil, nil, err
	}

	status := StatusConfirmed
	if calc.RequiresApproval {
		status = StatusPending
	}

	b := &Booking{
		FacilityID:       req.FacilityID,
		ZoneID:           zone.ID,
		UserID:           req.UserID,
		StartDate:        req.StartDate,
		TimeSlot:         req.TimeSlot,
		Mode:             req.Mode,
		EndDate:          req.EndDate,
		RecurrenceRule:   storedRule(req),
		StartTime:        firstSlot.Start,
		EndTime:          firstSlot.End,
		ActorType:        req.ActorType,
		EventType:        req.EventType,
		Attendees:        req.Attendees,
		Status:           status,
		TotalPrice:       calc.TotalPrice,
		Currency:         calc.Currency,
		PriceFallback:    calc.UsedFallback,
		RequiresApproval: calc.RequiresApproval,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, nil, err
	}

	b.FacilityName = fac.Name
	b.ZoneName = zone.Name

	return b, nil, nil
}

func (s *service) CheckConflict(ctx context.Context, req CreateRequest) (*ConflictReport, error) {
	// The dry-run is lenient where Create is strict: a proposal that could
	// never be booked answers with InvalidProposal set instead of an error,
	// so the booking form always gets the same response shape. A recurring
	// proposal missing its rule or end date is flagged the same way by the
	// engine itself.
	if !proposalPlausible(req) {
		return &ConflictReport{InvalidProposal: true}, nil
	}

	fac, _, err := s.resolveFacility(ctx, req.FacilityID, req.ZoneID)
	if err != nil {
		return nil, err
	}

	report, _, err := s.runConflictCheck(ctx, req, fac)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// proposalPlausible reports whether a dry-run proposal is well formed
// enough to expand: a parsable slot, a coherent date window and, for a
// recurring proposal, the rule and end date the expansion needs. Checked
// here rather than left to the engine so the verdict does not depend on
// whether the facility happens to have any bookings.
func proposalPlausible(req CreateRequest) bool {
	if _, ok := timeslot.Parse(req.StartDate, req.TimeSlot); !ok {
		return false
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return false
	}
	if req.Mode == conflict.ModeRecurring && (req.RecurrenceRule == "" || req.EndDate == nil) {
		return false
	}
	return true
}

// runConflictCheck expands the proposal against the facility's active
// bookings and, on a conflict, assembles alternatives and recommendations.
// It also returns the proposal's first concrete interval.
func (s *service) runConflictCheck(ctx context.Context, req CreateRequest, fac *facility.Facility) (*ConflictReport, timeslot.Interval, error) {
	firstSlot, ok := timeslot.Parse(req.StartDate, req.TimeSlot)
	if !ok {
		return nil, timeslot.Interval{}, ErrInvalidTimeSlot
	}

	existing, err := s.repo.ListActiveSlots(ctx, req.FacilityID)
	if err != nil {
		return nil, timeslot.Interval{}, err
	}

	res := conflict.CheckBookingConflict(conflict.Proposal{
		FacilityID:     req.FacilityID,
		StartDate:      req.StartDate,
		TimeSlot:       req.TimeSlot,
		Mode:           req.Mode,
		EndDate:        req.EndDate,
		RecurrenceRule: req.RecurrenceRule,
	}, existing)

	report := &ConflictReport{
		HasConflict:      res.HasConflict,
		InvalidProposal:  res.InvalidProposal,
		ConflictingDates: res.ConflictingDates,
	}

	if res.HasConflict {
		report.Alternatives = conflict.AlternativeTimes(firstSlot.Start, firstSlot.End)

		// Best effort: recommendations still make sense without the
		// alternative-facility list.
		others, err := s.facService.SuggestAlternatives(ctx, fac.ID, maxAlternativeFacilities)
		if err != nil {
			others = nil
		}

		report.Recommendations = conflict.Recommendations(
			len(res.ConflictingDates),
			report.Alternatives,
			others,
			req.StartDate,
			req.TimeSlot,
		)
	}

	return report, firstSlot, nil
}

func (s *service) validate(req CreateRequest) error {
	switch req.Mode {
	case conflict.ModeOneTime, conflict.ModeDateRange, conflict.ModeRecurring:
	default:
		return ErrInvalidMode
	}

	if !slices.Contains(pricing.ValidActorTypes, req.ActorType) {
		return ErrInvalidActor
	}

	if _, ok := timeslot.Parse(req.StartDate, req.TimeSlot); !ok {
		return ErrInvalidTimeSlot
	}

	// The engine would silently skip a recurring proposal with missing
	// parameters; the service surfaces it instead.
	if req.Mode == conflict.ModeRecurring && (req.RecurrenceRule == "" || req.EndDate == nil) {
		return ErrInvalidRecurrence
	}
	if req.Mode == conflict.ModeDateRange && req.EndDate == nil {
		return ErrInvalidDateRange
	}

	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return ErrInvalidDateRange
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	if req.StartDate.Before(today) {
		return ErrStartDatePast
	}

	return nil
}

func (s *service) resolveFacility(ctx context.Context, facilityID, zoneID string) (*facility.Facility, *facility.Zone, error) {
	fac, err := s.facService.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facility.ErrNotFound) {
			return nil, nil, ErrFacilityNotFound
		}
		return nil, nil, err
	}

	zone, err := s.facService.GetZoneByID(ctx, zoneID)
	if err != nil || zone.FacilityID != facilityID {
		return nil, nil, ErrZoneNotFound
	}

	return fac, zone, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	if !b.CanBeCancelled() {
		return nil, ErrInvalidStatus
	}

	b.Status = StatusCancelled
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusPending, StatusConfirmed)
}

func (s *service) Reject(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusPending, StatusRejected)
}

func (s *service) transition(ctx context.Context, id string, from, to Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != from {
		return nil, ErrInvalidStatus
	}

	b.Status = to
	if err := s.repo.UpdateStatus(ctx, b.ID, to); err != nil {
		return nil, err
	}
	return b, nil
}

// storedRule returns the recurrence rule to persist. Date-range bookings
// are stored as a bounded daily rule and unbounded recurring rules get an
// UNTIL at the booking's end date, so a stored booking always re-expands
// to a finite set.
func storedRule(req CreateRequest) *string {
	switch req.Mode {
	case conflict.ModeDateRange:
		rule := recurrence.FormatRule(recurrence.Daily, 1, 0, endOfDay(*req.EndDate))
		return &rule

	case conflict.ModeRecurring:
		parsed := recurrence.ParseRule(req.RecurrenceRule)
		if parsed.Count == 0 && parsed.Until.IsZero() {
			rule := recurrence.FormatRule(parsed.Frequency, parsed.Interval, 0, endOfDay(*req.EndDate))
			return &rule
		}
		rule := req.RecurrenceRule
		return &rule

	default:
		return nil
	}
}

func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
}

func endOrStart(req CreateRequest) time.Time {
	if req.EndDate != nil {
		return *req.EndDate
	}
	return req.StartDate
}

func pricingModeOrDefault(m pricing.PricingMode) pricing.PricingMode {
	if m == "" {
		return pricing.ModeHourly
	}
	return m
}

func bookingTypeFor(mode conflict.Mode) pricing.BookingType {
	if mode == conflict.ModeRecurring {
		return pricing.BookingRecurring
	}
	return pricing.BookingOneTime
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
