package http

import (
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/facilityimage"
)

type ImageResponse struct {
	ID           string    `json:"id"`
	FacilityID   string    `json:"facility_id"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewImageResponse(img *facilityimage.Image) ImageResponse {
	var thumbURL *string
	if img.ThumbnailPath != nil {
		t := facilityimage.ThumbnailURL(img.ID)
		thumbURL = &t
	}

	return ImageResponse{
		ID:           img.ID,
		FacilityID:   img.FacilityID,
		Filename:     img.Filename,
		URL:          facilityimage.URL(img.ID),
		ThumbnailURL: thumbURL,
		ContentType:  img.ContentType,
		Size:         img.Size,
		CreatedAt:    img.CreatedAt,
	}
}
