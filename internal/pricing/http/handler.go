package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lokalbooking/facility-booking-backend/internal/pricing"
)

type Handler struct {
	service pricing.Service
}

func NewHandler(service pricing.Service) *Handler {
	return &Handler{service: service}
}

// Quote returns a price preview for a prospective booking. Public: the
// booking form shows the price before anything is submitted.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	calc, err := h.service.Quote(c.Request.Context(), req.ToQuoteRequest())
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrZoneRequired),
			errors.Is(err, pricing.ErrInvalidActor),
			errors.Is(err, pricing.ErrInvalidMode),
			errors.Is(err, pricing.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute price"})
		}
		return
	}

	c.JSON(http.StatusOK, calc)
}

// ListRules returns the rule configuration for a zone. Admin only.
func (h *Handler) ListRules(c *gin.Context) {
	zoneID := c.Query("zone_id")
	if zoneID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zone_id query parameter is required"})
		return
	}

	rules, err := h.service.ListRules(c.Request.Context(), zoneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pricing rules"})
		return
	}

	items := make([]RuleResponse, len(rules))
	for i, r := range rules {
		items[i] = NewRuleResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateRule adds a pricing rule. Admin only.
func (h *Handler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rule, err := h.service.CreateRule(c.Request.Context(), req.ToRule())
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrZoneRequired),
			errors.Is(err, pricing.ErrInvalidActor),
			errors.Is(err, pricing.ErrInvalidMode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create pricing rule"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewRuleResponse(*rule))
}

// DeleteRule removes a pricing rule. Admin only.
func (h *Handler) DeleteRule(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteRule(c.Request.Context(), id); err != nil {
		if errors.Is(err, pricing.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pricing rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete pricing rule"})
		return
	}

	c.Status(http.StatusNoContent)
}
