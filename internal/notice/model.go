package notice

import (
	"net/http"
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "notice not found")
	ErrTitleRequired   = apperror.New(http.StatusBadRequest, "title is required")
	ErrContentRequired = apperror.New(http.StatusBadRequest, "content is required")
)

// Notice is an operational message shown to visitors, either for a single
// facility (maintenance, closed periods) or municipality-wide when
// FacilityID is nil.
type Notice struct {
	ID           string
	FacilityID   *string
	FacilityName *string
	Title        string
	Content      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing notices.
type Filter struct {
	FacilityID string
	Keyword    string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
