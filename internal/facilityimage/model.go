package facilityimage

import (
	"net/http"
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "image not found")
	ErrNotAnImage    = apperror.New(http.StatusBadRequest, "file must be a JPEG or PNG image")
	ErrTooLarge      = apperror.New(http.StatusBadRequest, "image exceeds the maximum allowed size")
	ErrNoThumbnail   = apperror.New(http.StatusNotFound, "thumbnail not available")
	ErrFacilityEmpty = apperror.New(http.StatusBadRequest, "facility id is required")
)

// Image is a photo attached to a facility. StoragePath points at the
// original upload, ThumbnailPath at the generated preview.
type Image struct {
	ID            string
	FacilityID    string
	UploadedBy    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL for the full-size image.
func URL(id string) string {
	return "/v1/facility-images/" + id
}

// ThumbnailURL returns the public URL for the image's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/facility-images/" + id + "/thumbnail"
}
