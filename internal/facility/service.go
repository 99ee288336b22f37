package facility

import (
	"context"
	"slices"
	"strings"
)

type CreateRequest struct {
	Name        string
	Type        string
	Address     string
	Capacity    int
	Description *string
}

type UpdateRequest struct {
	Name        *string
	Type        *string
	Address     *string
	Capacity    *int
	Description *string
}

type CreateZoneRequest struct {
	FacilityID string
	Name       string
	Capacity   int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Facility, error)
	GetByID(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, filter Filter) ([]*Facility, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Facility, error)
	Delete(ctx context.Context, id string) error

	CreateZone(ctx context.Context, req CreateZoneRequest) (*Zone, error)
	GetZoneByID(ctx context.Context, id string) (*Zone, error)
	DeleteZone(ctx context.Context, id string) error

	// SuggestAlternatives returns names of other facilities to mention in
	// conflict recommendations.
	SuggestAlternatives(ctx context.Context, excludeID string, limit int) ([]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Facility, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !slices.Contains(ValidTypes, req.Type) {
		return nil, ErrInvalidType
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	f := &Facility{
		Name:        strings.TrimSpace(req.Name),
		Type:        req.Type,
		Address:     strings.TrimSpace(req.Address),
		Capacity:    req.Capacity,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	// Every facility is bookable as a whole from day one.
	whole := &Zone{
		FacilityID: f.ID,
		Name:       WholeFacilityZone,
		Capacity:   f.Capacity,
	}
	if err := s.repo.CreateZone(ctx, whole); err != nil {
		return nil, err
	}
	f.Zones = []Zone{*whole}

	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Facility, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Facility, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Facility, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		if !slices.Contains(ValidTypes, *req.Type) {
			return nil, ErrInvalidType
		}
		f.Type = *req.Type
	}
	if req.Address != nil {
		f.Address = strings.TrimSpace(*req.Address)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		f.Capacity = *req.Capacity
	}
	if req.Description != nil {
		f.Description = req.Description
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CreateZone(ctx context.Context, req CreateZoneRequest) (*Zone, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	// Validation: the parent facility must exist.
	if _, err := s.repo.GetByID(ctx, req.FacilityID); err != nil {
		return nil, err
	}

	z := &Zone{
		FacilityID: req.FacilityID,
		Name:       strings.TrimSpace(req.Name),
		Capacity:   req.Capacity,
	}
	if err := s.repo.CreateZone(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

func (s *service) GetZoneByID(ctx context.Context, id string) (*Zone, error) {
	return s.repo.GetZoneByID(ctx, id)
}

func (s *service) DeleteZone(ctx context.Context, id string) error {
	if _, err := s.repo.GetZoneByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteZone(ctx, id)
}

func (s *service) SuggestAlternatives(ctx context.Context, excludeID string, limit int) ([]string, error) {
	return s.repo.ListNames(ctx, excludeID, limit)
}
