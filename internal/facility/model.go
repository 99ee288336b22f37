package facility

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("facility not found")
	ErrZoneNotFound    = errors.New("zone not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidType     = errors.New("invalid facility type")
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrDuplicateName   = errors.New("a facility with this name already exists")
)

// WholeFacilityZone is the zone every facility gets at creation; bookings
// and pricing rules that cover the entire building reference it.
const WholeFacilityZone = "whole-facility"

// ValidTypes lists the accepted facility type values.
var ValidTypes = []string{
	"gymsal",
	"idrettshall",
	"svommehall",
	"auditorium",
	"klasserom",
	"moterom",
	"kultursal",
}

// Facility represents a bookable municipal building or hall.
type Facility struct {
	ID          string
	Name        string
	Type        string
	Address     string
	Capacity    int
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Zones       []Zone
}

// Zone is a bookable part of a facility (a court half, a meeting room, or
// the synthetic whole-facility zone).
type Zone struct {
	ID         string
	FacilityID string
	Name       string
	Capacity   int
	CreatedAt  time.Time
}

// Filter defines parameters for listing facilities.
type Filter struct {
	Type        string
	Keyword     string
	MinCapacity int
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
