package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lokalbooking/facility-booking-backend/internal/auth"
	"github.com/lokalbooking/facility-booking-backend/internal/booking"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/metrics"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/response"
	"github.com/lokalbooking/facility-booking-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
	metrics     *metrics.Metrics
}

func NewHandler(service booking.Service, userService user.Service, m *metrics.Metrics) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
		metrics:     m,
	}
}

// checkIsSysAdmin helper checks if the current user is a system admin
func (h *Handler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := req.Defaults()

	// Access Control Logic
	currentUserID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, currentUserID)

	filterUserID := currentUserID

	// If Admin, they can see all or filter by specific user
	if isSysAdmin {
		filterUserID = req.UserID // can be empty to show all
	}
	// If Normal User, forced to see only their own

	filter := booking.Filter{
		UserID:     filterUserID,
		FacilityID: req.FacilityID,
		Status:     req.Status,
		From:       req.from,
		To:         req.to,
		Page:       page,
		PageSize:   pageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, report, err := h.service.Create(c.Request.Context(), req.ToCreateRequest(userID))
	if err != nil {
		// A conflict gets the full report as its body so the client can
		// show alternatives instead of a bare error.
		if errors.Is(err, booking.ErrTimeConflict) && report != nil {
			if h.metrics != nil {
				h.metrics.ObserveConflict()
			}
			c.JSON(http.StatusConflict, NewConflictResponse(report))
			return
		}
		response.Error(c, err)
		return
	}

	if h.metrics != nil && b.PriceFallback {
		h.metrics.ObserveFallbackQuote()
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// CheckConflict runs the same expansion and scan as Create without
// persisting anything. Always a 200; the verdict is in the body.
func (h *Handler) CheckConflict(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.service.CheckConflict(c.Request.Context(), req.ToCreateRequest(auth.GetUserID(c)))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewConflictResponse(report))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Access Check: User owns booking OR SysAdmin
	userID := auth.GetUserID(c)
	if userID != b.UserID && !h.checkIsSysAdmin(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	b, err := h.service.Cancel(c.Request.Context(), id, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Approve(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
