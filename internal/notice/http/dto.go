package http

import (
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/notice"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/request"
)

type NoticeResponse struct {
	ID           string    `json:"id"`
	FacilityID   *string   `json:"facility_id,omitempty"`
	FacilityName *string   `json:"facility_name,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewResponse(n *notice.Notice) NoticeResponse {
	return NoticeResponse{
		ID:           n.ID,
		FacilityID:   n.FacilityID,
		FacilityName: n.FacilityName,
		Title:        n.Title,
		Content:      n.Content,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

type CreateRequest struct {
	FacilityID *string `json:"facility_id" binding:"omitempty,uuid"`
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
}

type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ListNoticesRequest defines query parameters for listing notices.
type ListNoticesRequest struct {
	request.ListParams
	FacilityID string `form:"facility_id" binding:"omitempty,uuid"`
	Keyword    string `form:"keyword"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=created_at updated_at title"`
}

// Validate performs custom validation for ListNoticesRequest.
func (r *ListNoticesRequest) Validate() error {
	return nil
}
