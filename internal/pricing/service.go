package pricing

import (
	"context"
	"errors"
	"slices"
)

var ErrRuleNotFound = errors.New("pricing rule not found")

// Service exposes price quoting and rule administration. The engine itself
// stays storage-free; the service loads the zone's rule set and hands it to
// a fresh engine per call.
type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*Calculation, error)
	CreateRule(ctx context.Context, rule Rule) (*Rule, error)
	DeleteRule(ctx context.Context, id string) error
	ListRules(ctx context.Context, zoneID string) ([]Rule, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Calculation, error) {
	if req.ZoneID == "" {
		return nil, ErrZoneRequired
	}
	if !slices.Contains(ValidActorTypes, req.ActorType) {
		return nil, ErrInvalidActor
	}
	switch req.PricingMode {
	case ModeHourly, ModeDaily, ModeFixed:
	default:
		return nil, ErrInvalidMode
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidPeriod
	}

	rules, err := s.repo.ListByZone(ctx, req.ZoneID)
	if err != nil {
		return nil, err
	}

	calc := NewEngine(rules).Quote(req)
	return &calc, nil
}

func (s *service) CreateRule(ctx context.Context, rule Rule) (*Rule, error) {
	if rule.ZoneID == "" {
		return nil, ErrZoneRequired
	}
	if !slices.Contains(ValidActorTypes, rule.ActorType) {
		return nil, ErrInvalidActor
	}
	switch rule.PricingMode {
	case ModeHourly, ModeDaily, ModeFixed:
	default:
		return nil, ErrInvalidMode
	}

	if err := s.repo.Create(ctx, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *service) DeleteRule(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListRules(ctx context.Context, zoneID string) ([]Rule, error) {
	return s.repo.ListByZone(ctx, zoneID)
}
