package facilityimage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lokalbooking/facility-booking-backend/internal/pkg/storage"
)

// maxImageBytes caps uploads at 10 MiB.
const maxImageBytes = 10 << 20

var allowedContentTypes = []string{"image/jpeg", "image/png"}

type UploadInput struct {
	FacilityID string
	UploadedBy string
	FileHeader *multipart.FileHeader
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*Image, error)
	ListByFacility(ctx context.Context, facilityID string) ([]*Image, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*Image, error) {
	if input.FacilityID == "" {
		return nil, ErrFacilityEmpty
	}

	header := input.FileHeader
	if header.Size > maxImageBytes {
		return nil, ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !slices.Contains(allowedContentTypes, contentType) {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	// Buffered so the content can be read twice: once for the original,
	// once for the thumbnail.
	fileBytes, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file content failed: %w", err)
	}
	if int64(len(fileBytes)) > maxImageBytes {
		return nil, ErrTooLarge
	}

	imageID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharding path: facilities/ab/UUID.ext
	shard := imageID[:2]
	storagePath := fmt.Sprintf("facilities/%s/%s%s", shard, imageID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save image to storage failed: %w", err)
	}

	// Thumbnail failures do not fail the upload.
	var thumbnailPath *string
	if thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 400, 300); err == nil {
		tPath := fmt.Sprintf("facilities/%s/%s_thumb.jpg", shard, imageID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	img := &Image{
		ID:            imageID,
		FacilityID:    input.FacilityID,
		UploadedBy:    input.UploadedBy,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, img); err != nil {
		// Cleanup storage if db fails
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return img, nil
}

func (s *service) ListByFacility(ctx context.Context, facilityID string) ([]*Image, error) {
	return s.repo.ListByFacility(ctx, facilityID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Best effort storage cleanup; the record is removed regardless.
	_ = s.storage.Delete(ctx, img.StoragePath)
	if img.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *img.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve image from storage failed: %w", err)
	}

	return stream, img, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if img.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *img.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail from storage failed: %w", err)
	}

	return stream, img, nil
}
