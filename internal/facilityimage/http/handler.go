package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lokalbooking/facility-booking-backend/internal/auth"
	"github.com/lokalbooking/facility-booking-backend/internal/facilityimage"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/response"
)

type Handler struct {
	imageService facilityimage.Service
}

func NewHandler(imageService facilityimage.Service) *Handler {
	return &Handler{
		imageService: imageService,
	}
}

// Upload stores a new photo for a facility.
func (h *Handler) Upload(c *gin.Context) {
	facilityID := c.Param("id")
	if _, err := uuid.Parse(facilityID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	img, err := h.imageService.Upload(c.Request.Context(), facilityimage.UploadInput{
		FacilityID: facilityID,
		UploadedBy: auth.GetUserID(c),
		FileHeader: fileHeader,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewImageResponse(img))
}

// ListByFacility lists all photos of a facility.
func (h *Handler) ListByFacility(c *gin.Context) {
	facilityID := c.Param("id")
	if _, err := uuid.Parse(facilityID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	images, err := h.imageService.ListByFacility(c.Request.Context(), facilityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list images"})
		return
	}

	items := make([]ImageResponse, len(images))
	for i, img := range images {
		items[i] = NewImageResponse(img)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ServeImage streams the full-size image content.
func (h *Handler) ServeImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, img, err := h.imageService.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", img.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+img.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started, nothing sensible left to do.
		return
	}
}

// ServeThumbnail streams the thumbnail, always a JPEG.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, img, err := h.imageService.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+img.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

// Delete removes an image and its stored files.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
