package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lokalbooking/facility-booking-backend/internal/notice"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/request"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/response"
)

type Handler struct {
	service notice.Service
}

func NewHandler(service notice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListNoticesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	page, pageSize := req.Defaults()

	filter := notice.Filter{
		FacilityID: req.FacilityID,
		Keyword:    req.Keyword,
		Page:       page,
		PageSize:   pageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notices"})
		return
	}

	items := make([]NoticeResponse, len(list))
	for i, n := range list {
		items[i] = NewResponse(n)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	n, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get notice"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(n))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := notice.CreateRequest{
		FacilityID: body.FacilityID,
		Title:      body.Title,
		Content:    body.Content,
	}

	n, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrTitleRequired),
			errors.Is(err, notice.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notice"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(n))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := notice.UpdateRequest{
		Title:   body.Title,
		Content: body.Content,
	}

	n, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
		case errors.Is(err, notice.ErrTitleRequired),
			errors.Is(err, notice.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notice"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(n))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notice"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
