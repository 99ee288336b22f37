package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lokalbooking/facility-booking-backend/internal/conflict"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ListActiveSlots returns slot snapshots of every pending or confirmed
	// booking for the facility, as input to a conflict check.
	ListActiveSlots(ctx context.Context, facilityID string) ([]conflict.BookingSlot, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = "b.id, b.facility_id, f.name, b.zone_id, z.name, b.user_id, u.display_name, " +
	"b.start_date, b.time_slot, b.mode, b.end_date, b.recurrence_rule, " +
	"b.start_time, b.end_time, b.actor_type, b.event_type, b.attendees, " +
	"b.status, b.total_price, b.currency, b.price_fallback, b.requires_approval, " +
	"b.created_at, b.updated_at"

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.FacilityID, &b.FacilityName, &b.ZoneID, &b.ZoneName, &b.UserID, &b.UserName,
		&b.StartDate, &b.TimeSlot, &b.Mode, &b.EndDate, &b.RecurrenceRule,
		&b.StartTime, &b.EndTime, &b.ActorType, &b.EventType, &b.Attendees,
		&b.Status, &b.TotalPrice, &b.Currency, &b.PriceFallback, &b.RequiresApproval,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"facility_id", "zone_id", "user_id",
			"start_date", "time_slot", "mode", "end_date", "recurrence_rule",
			"start_time", "end_time", "actor_type", "event_type", "attendees",
			"status", "total_price", "currency", "price_fallback", "requires_approval",
		).
		Values(
			b.FacilityID, b.ZoneID, b.UserID,
			b.StartDate, b.TimeSlot, b.Mode, b.EndDate, b.RecurrenceRule,
			b.StartTime, b.EndTime, b.ActorType, b.EventType, b.Attendees,
			b.Status, b.TotalPrice, b.Currency, b.PriceFallback, b.RequiresApproval,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings b").
		Join("public.facilities f ON b.facility_id = f.id").
		Join("public.zones z ON b.zone_id = z.id").
		Join("public.users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns, "count(*) OVER() as total_count").
		From("public.bookings b").
		Join("public.facilities f ON b.facility_id = f.id").
		Join("public.zones z ON b.zone_id = z.id").
		Join("public.users u ON b.user_id = u.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.FacilityID != "" {
		query = query.Where(squirrel.Eq{"b.facility_id": filter.FacilityID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.To})
	}

	// Sorting
	orderBy := "b.start_time"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListActiveSlots(ctx context.Context, facilityID string) ([]conflict.BookingSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "facility_id", "start_time", "end_time", "recurrence_rule").
		From("public.bookings").
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusConfirmed}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active slots failed: %w", err)
	}
	defer rows.Close()

	var slots []conflict.BookingSlot
	for rows.Next() {
		var s conflict.BookingSlot
		var rule *string
		if err := rows.Scan(&s.ID, &s.FacilityID, &s.Start, &s.End, &rule); err != nil {
			return nil, fmt.Errorf("scan active slot failed: %w", err)
		}
		if rule != nil {
			s.RecurrenceRule = *rule
		}
		slots = append(slots, s)
	}

	return slots, nil
}
