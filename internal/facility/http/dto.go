package http

import (
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/facility"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/request"
)

// ListFacilitiesRequest defines query parameters for listing facilities.
type ListFacilitiesRequest struct {
	request.ListParams
	Type        string `form:"type" binding:"omitempty"`
	Keyword     string `form:"keyword"`
	MinCapacity int    `form:"min_capacity" binding:"omitempty,min=1"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=name capacity created_at"`
}

// Validate performs custom validation for ListFacilitiesRequest.
func (r *ListFacilitiesRequest) Validate() error {
	return nil
}

// FacilityTag is a brief representation of a facility.
type FacilityTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ZoneResponse is the API shape of a zone.
type ZoneResponse struct {
	ID         string `json:"id"`
	FacilityID string `json:"facility_id"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
}

func NewZoneResponse(z facility.Zone) ZoneResponse {
	return ZoneResponse{
		ID:         z.ID,
		FacilityID: z.FacilityID,
		Name:       z.Name,
		Capacity:   z.Capacity,
	}
}

// FacilityResponse is the API shape of a facility.
type FacilityResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Address     string         `json:"address"`
	Capacity    int            `json:"capacity"`
	Description *string        `json:"description"`
	Zones       []ZoneResponse `json:"zones"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func NewFacilityResponse(f *facility.Facility) FacilityResponse {
	zones := make([]ZoneResponse, 0, len(f.Zones))
	for _, z := range f.Zones {
		zones = append(zones, NewZoneResponse(z))
	}

	return FacilityResponse{
		ID:          f.ID,
		Name:        f.Name,
		Type:        f.Type,
		Address:     f.Address,
		Capacity:    f.Capacity,
		Description: f.Description,
		Zones:       zones,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// CreateFacilityRequest is the payload for creating a facility.
type CreateFacilityRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	Description *string `json:"description"`
}

// UpdateFacilityRequest defines fields allowed to be updated via PATCH.
// Pointers distinguish "field not sent" from "field sent as empty".
type UpdateFacilityRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Address     *string `json:"address"`
	Capacity    *int    `json:"capacity"`
	Description *string `json:"description"`
}

// CreateZoneRequest is the payload for adding a zone to a facility.
type CreateZoneRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}
