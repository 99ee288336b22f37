package pricing

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// ListByZone returns the static rule configuration for one zone.
	ListByZone(ctx context.Context, zoneID string) ([]Rule, error)
	Create(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListByZone(ctx context.Context, zoneID string) ([]Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "zone_id", "actor_type", "booking_type", "pricing_mode",
		"time_slot_category", "day_type", "price",
	).
		From("public.pricing_rules").
		Where(squirrel.Eq{"zone_id": zoneID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list pricing rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules failed: %w", err)
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var rule Rule
		if err := rows.Scan(
			&rule.ID, &rule.ZoneID, &rule.ActorType, &rule.BookingType, &rule.PricingMode,
			&rule.TimeSlotCategory, &rule.DayType, &rule.Price,
		); err != nil {
			return nil, fmt.Errorf("scan pricing rule failed: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func (r *pgxRepository) Create(ctx context.Context, rule *Rule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.pricing_rules").
		Columns("zone_id", "actor_type", "booking_type", "pricing_mode", "time_slot_category", "day_type", "price").
		Values(rule.ZoneID, rule.ActorType, rule.BookingType, rule.PricingMode, rule.TimeSlotCategory, rule.DayType, rule.Price).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create pricing rule query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&rule.ID)
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.pricing_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete pricing rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete pricing rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}
