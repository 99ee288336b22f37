package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lokalbooking/facility-booking-backend/internal/conflict"
	"github.com/lokalbooking/facility-booking-backend/internal/facility"
	"github.com/lokalbooking/facility-booking-backend/internal/pricing"
)

type stubRepo struct {
	slots    []conflict.BookingSlot
	bookings map[string]*Booking
	created  *Booking
	statuses map[string]Status
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		bookings: map[string]*Booking{},
		statuses: map[string]Status{},
	}
}

func (r *stubRepo) Create(_ context.Context, b *Booking) error {
	b.ID = "b-new"
	r.created = b
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copy := *b
	return &copy, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	r.statuses[id] = status
	return nil
}

func (r *stubRepo) ListActiveSlots(_ context.Context, _ string) ([]conflict.BookingSlot, error) {
	return r.slots, nil
}

type stubFacilities struct {
	facility.Service
	fac   *facility.Facility
	zone  *facility.Zone
	names []string
}

func (s *stubFacilities) GetByID(_ context.Context, id string) (*facility.Facility, error) {
	if s.fac == nil || s.fac.ID != id {
		return nil, facility.ErrNotFound
	}
	return s.fac, nil
}

func (s *stubFacilities) GetZoneByID(_ context.Context, id string) (*facility.Zone, error) {
	if s.zone == nil || s.zone.ID != id {
		return nil, facility.ErrZoneNotFound
	}
	return s.zone, nil
}

func (s *stubFacilities) SuggestAlternatives(_ context.Context, _ string, _ int) ([]string, error) {
	return s.names, nil
}

type stubPricing struct {
	pricing.Service
	calc *pricing.Calculation
}

func (s *stubPricing) Quote(_ context.Context, _ pricing.QuoteRequest) (*pricing.Calculation, error) {
	return s.calc, nil
}

func newTestService(repo *stubRepo, calc *pricing.Calculation) Service {
	facs := &stubFacilities{
		fac:   &facility.Facility{ID: "f1", Name: "Storhallen"},
		zone:  &facility.Zone{ID: "z1", FacilityID: "f1", Name: "Hel bane"},
		names: []string{"Lillehallen"},
	}
	if calc == nil {
		calc = &pricing.Calculation{TotalPrice: 900, Currency: "NOK"}
	}
	return NewService(repo, facs, &stubPricing{calc: calc})
}

func validRequest() CreateRequest {
	return CreateRequest{
		UserID:     "u1",
		FacilityID: "f1",
		ZoneID:     "z1",
		StartDate:  time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:   "18:00-20:00",
		Mode:       conflict.ModeOneTime,
		ActorType:  pricing.ActorPrivatePerson,
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newStubRepo(), nil)
	ctx := context.Background()

	t.Run("invalid mode", func(t *testing.T) {
		req := validRequest()
		req.Mode = "annenhver-uke"
		_, _, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrInvalidMode)
	})

	t.Run("invalid actor", func(t *testing.T) {
		req := validRequest()
		req.ActorType = "kommune"
		_, _, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrInvalidActor)
	})

	t.Run("malformed slot", func(t *testing.T) {
		req := validRequest()
		req.TimeSlot = "20:00-18:00"
		_, _, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("recurring without rule", func(t *testing.T) {
		req := validRequest()
		req.Mode = conflict.ModeRecurring
		end := req.StartDate.AddDate(0, 1, 0)
		req.EndDate = &end
		_, _, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrInvalidRecurrence)
	})

	t.Run("end before start", func(t *testing.T) {
		req := validRequest()
		req.Mode = conflict.ModeDateRange
		end := req.StartDate.AddDate(0, 0, -1)
		req.EndDate = &end
		_, _, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("start in the past", func(t *testing.T) {
		req := validRequest()
		req.StartDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		_, _, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrStartDatePast)
	})

	t.Run("unknown facility", func(t *testing.T) {
		req := validRequest()
		req.FacilityID = "missing"
		_, _, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrFacilityNotFound)
	})
}

func TestCreateConflictReturnsReport(t *testing.T) {
	repo := newStubRepo()
	repo.slots = []conflict.BookingSlot{
		{
			ID:         "existing",
			FacilityID: "f1",
			Start:      time.Date(2030, 6, 10, 19, 0, 0, 0, time.UTC),
			End:        time.Date(2030, 6, 10, 21, 0, 0, 0, time.UTC),
		},
	}
	svc := newTestService(repo, nil)

	b, report, err := svc.Create(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrTimeConflict)
	require.Nil(t, b)
	require.Nil(t, repo.created)

	require.NotNil(t, report)
	require.True(t, report.HasConflict)
	require.Len(t, report.ConflictingDates, 1)
	require.Len(t, report.Alternatives, 2)
	require.NotEmpty(t, report.Recommendations)
}

func TestCreatePersistsBooking(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, nil)

	b, report, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.Nil(t, report)

	require.Equal(t, "b-new", b.ID)
	require.Equal(t, StatusConfirmed, b.Status)
	require.Equal(t, "Storhallen", b.FacilityName)
	require.Equal(t, float64(900), b.TotalPrice)
	require.Equal(t, "NOK", b.Currency)
	require.Equal(t, time.Date(2030, 6, 10, 18, 0, 0, 0, time.UTC), b.StartTime)
	require.Equal(t, time.Date(2030, 6, 10, 20, 0, 0, 0, time.UTC), b.EndTime)
	require.Nil(t, b.RecurrenceRule)
}

func TestCreatePendingWhenApprovalRequired(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &pricing.Calculation{
		TotalPrice:       0,
		Currency:         "NOK",
		RequiresApproval: true,
	})

	req := validRequest()
	req.ActorType = pricing.ActorClub

	b, _, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, StatusPending, b.Status)
	require.True(t, b.RequiresApproval)
}

func TestCreateNormalizesStoredRule(t *testing.T) {
	ctx := context.Background()

	t.Run("date range stored as bounded daily rule", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(repo, nil)

		req := validRequest()
		req.Mode = conflict.ModeDateRange
		end := time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC)
		req.EndDate = &end

		b, _, err := svc.Create(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, b.RecurrenceRule)
		require.Equal(t, "FREQ=DAILY;INTERVAL=1;UNTIL=20300612T235959Z", *b.RecurrenceRule)
	})

	t.Run("unbounded recurring rule gets an UNTIL", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(repo, nil)

		req := validRequest()
		req.Mode = conflict.ModeRecurring
		req.RecurrenceRule = "FREQ=WEEKLY;INTERVAL=1"
		end := time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC)
		req.EndDate = &end

		b, _, err := svc.Create(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, b.RecurrenceRule)
		require.Equal(t, "FREQ=WEEKLY;INTERVAL=1;UNTIL=20300701T235959Z", *b.RecurrenceRule)
	})

	t.Run("bounded rule kept as is", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(repo, nil)

		req := validRequest()
		req.Mode = conflict.ModeRecurring
		req.RecurrenceRule = "FREQ=WEEKLY;INTERVAL=1;COUNT=4"
		end := time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC)
		req.EndDate = &end

		b, _, err := svc.Create(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, b.RecurrenceRule)
		require.Equal(t, "FREQ=WEEKLY;INTERVAL=1;COUNT=4", *b.RecurrenceRule)
	})
}

func TestCheckConflictDryRun(t *testing.T) {
	ctx := context.Background()

	t.Run("clean proposal", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(repo, nil)

		report, err := svc.CheckConflict(ctx, validRequest())
		require.NoError(t, err)
		require.False(t, report.HasConflict)
		require.False(t, report.InvalidProposal)
		require.Nil(t, repo.created)
	})

	// Where Create rejects a broken proposal, the dry-run answers with a
	// report so the client always gets the same response shape.
	t.Run("recurring without rule is flagged not rejected", func(t *testing.T) {
		svc := newTestService(newStubRepo(), nil)

		req := validRequest()
		req.Mode = conflict.ModeRecurring
		end := req.StartDate.AddDate(0, 1, 0)
		req.EndDate = &end

		report, err := svc.CheckConflict(ctx, req)
		require.NoError(t, err)
		require.True(t, report.InvalidProposal)
		require.False(t, report.HasConflict)
	})

	t.Run("unparsable slot is flagged not rejected", func(t *testing.T) {
		svc := newTestService(newStubRepo(), nil)

		req := validRequest()
		req.TimeSlot = "not-a-slot"

		report, err := svc.CheckConflict(ctx, req)
		require.NoError(t, err)
		require.True(t, report.InvalidProposal)
	})

	t.Run("reversed date range is flagged not rejected", func(t *testing.T) {
		svc := newTestService(newStubRepo(), nil)

		req := validRequest()
		req.Mode = conflict.ModeDateRange
		end := req.StartDate.AddDate(0, 0, -3)
		req.EndDate = &end

		report, err := svc.CheckConflict(ctx, req)
		require.NoError(t, err)
		require.True(t, report.InvalidProposal)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	setup := func(status Status) (*stubRepo, Service) {
		repo := newStubRepo()
		repo.bookings["b1"] = &Booking{ID: "b1", UserID: "u1", Status: status}
		return repo, newTestService(repo, nil)
	}

	t.Run("owner can cancel", func(t *testing.T) {
		repo, svc := setup(StatusConfirmed)
		b, err := svc.Cancel(ctx, "b1", "u1", false)
		require.NoError(t, err)
		require.Equal(t, StatusCancelled, b.Status)
		require.Equal(t, StatusCancelled, repo.statuses["b1"])
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		_, svc := setup(StatusConfirmed)
		_, err := svc.Cancel(ctx, "b1", "u2", false)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("admin can cancel any", func(t *testing.T) {
		_, svc := setup(StatusPending)
		b, err := svc.Cancel(ctx, "b1", "u2", true)
		require.NoError(t, err)
		require.Equal(t, StatusCancelled, b.Status)
	})

	t.Run("already cancelled", func(t *testing.T) {
		_, svc := setup(StatusCancelled)
		_, err := svc.Cancel(ctx, "b1", "u1", false)
		require.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestApproveReject(t *testing.T) {
	ctx := context.Background()

	t.Run("approve pending", func(t *testing.T) {
		repo := newStubRepo()
		repo.bookings["b1"] = &Booking{ID: "b1", Status: StatusPending}
		svc := newTestService(repo, nil)

		b, err := svc.Approve(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, StatusConfirmed, b.Status)
	})

	t.Run("reject pending", func(t *testing.T) {
		repo := newStubRepo()
		repo.bookings["b1"] = &Booking{ID: "b1", Status: StatusPending}
		svc := newTestService(repo, nil)

		b, err := svc.Reject(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, StatusRejected, b.Status)
	})

	t.Run("approve non-pending fails", func(t *testing.T) {
		repo := newStubRepo()
		repo.bookings["b1"] = &Booking{ID: "b1", Status: StatusConfirmed}
		svc := newTestService(repo, nil)

		_, err := svc.Approve(ctx, "b1")
		require.ErrorIs(t, err, ErrInvalidStatus)
	})
}
