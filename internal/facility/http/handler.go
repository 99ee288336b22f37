package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lokalbooking/facility-booking-backend/internal/facility"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/request"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/response"
)

type Handler struct {
	service facility.Service
}

func NewHandler(service facility.Service) *Handler {
	return &Handler{service: service}
}

// List returns a paginated facility catalog. Public.
func (h *Handler) List(c *gin.Context) {
	var req ListFacilitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	page, pageSize := req.Defaults()

	filter := facility.Filter{
		Type:        req.Type,
		Keyword:     req.Keyword,
		MinCapacity: req.MinCapacity,
		Page:        page,
		PageSize:    pageSize,
		SortBy:      req.SortBy,
		SortOrder:   strings.ToUpper(req.SortOrder),
	}

	facilities, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list facilities"})
		return
	}

	items := make([]FacilityResponse, len(facilities))
	for i, f := range facilities {
		items[i] = NewFacilityResponse(f)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// Get returns one facility with its zones. Public.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, facility.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get facility"})
		return
	}

	c.JSON(http.StatusOK, NewFacilityResponse(f))
}

// Create adds a facility. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateFacilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Create(c.Request.Context(), facility.CreateRequest{
		Name:        body.Name,
		Type:        body.Type,
		Address:     body.Address,
		Capacity:    body.Capacity,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, facility.ErrEmptyName),
			errors.Is(err, facility.ErrInvalidType),
			errors.Is(err, facility.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, facility.ErrDuplicateName):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create facility"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewFacilityResponse(f))
}

// Update modifies a facility. Admin only.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateFacilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Update(c.Request.Context(), uri.ID, facility.UpdateRequest{
		Name:        body.Name,
		Type:        body.Type,
		Address:     body.Address,
		Capacity:    body.Capacity,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, facility.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
		case errors.Is(err, facility.ErrEmptyName),
			errors.Is(err, facility.ErrInvalidType),
			errors.Is(err, facility.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, facility.ErrDuplicateName):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update facility"})
		}
		return
	}

	c.JSON(http.StatusOK, NewFacilityResponse(f))
}

// Delete removes a facility. Admin only.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, facility.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete facility"})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateZone adds a zone to a facility. Admin only.
func (h *Handler) CreateZone(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body CreateZoneRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	z, err := h.service.CreateZone(c.Request.Context(), facility.CreateZoneRequest{
		FacilityID: uri.ID,
		Name:       body.Name,
		Capacity:   body.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, facility.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
		case errors.Is(err, facility.ErrEmptyName), errors.Is(err, facility.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create zone"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewZoneResponse(*z))
}

// DeleteZone removes a zone. Admin only.
func (h *Handler) DeleteZone(c *gin.Context) {
	zoneID := c.Param("zoneId")

	if err := h.service.DeleteZone(c.Request.Context(), zoneID); err != nil {
		if errors.Is(err, facility.ErrZoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete zone"})
		return
	}

	c.Status(http.StatusNoContent)
}
