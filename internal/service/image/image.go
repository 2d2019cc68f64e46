// internal/service/image/image.go
package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"showroom-service/internal/domain/image"
	wsdomain "showroom-service/internal/domain/websocket"
	xerrors "showroom-service/internal/pkg/errors"
	"showroom-service/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// DefaultMaxBytes is the upload ceiling used when none is configured.
const DefaultMaxBytes int64 = 10 << 20

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedTypes = []string{"jpeg", "jpg", "png", "gif", "webp"}

var allowedSniffed = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Repository interface {
	Create(ctx context.Context, owner image.Owner, path string, isPrimary bool, caption *string) (int64, error)
	FindByID(ctx context.Context, id int64) (*image.Image, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type ImageService struct {
	repo     Repository
	store    storage.BlobStore
	notifier wsdomain.Notifier
	maxBytes int64
	logger   *zap.Logger
}

func NewImageService(
	repo Repository,
	store storage.BlobStore,
	notifier wsdomain.Notifier,
	maxBytes int64,
	logger *zap.Logger,
) *ImageService {
	if notifier == nil {
		notifier = wsdomain.NopNotifier{}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &ImageService{
		repo:     repo,
		store:    store,
		notifier: notifier,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// MaxBytes is the largest accepted upload.
func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates the file, stores it under a fresh name and records the
// image row. Nothing is written unless every check passes, and the blob is
// removed again if the row cannot be inserted.
func (s *ImageService) Upload(ctx context.Context, up *image.Upload) (int64, string, error) {
	if err := validateOwner(up.Owner); err != nil {
		return 0, "", err
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !allowedExtensions[ext] || !declaredTypeAllowed(up.ContentType) {
		return 0, "", xerrors.ErrUnsupportedMedia
	}

	if up.Size > s.maxBytes {
		return 0, "", s.tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(up.Body, s.maxBytes+1))
	if err != nil {
		return 0, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return 0, "", s.tooLarge()
	}

	sniffed := mimetype.Detect(data)
	if !allowedSniffed[sniffed.String()] {
		s.logger.Warn("upload content is not an image",
			zap.String("filename", up.Filename),
			zap.String("declared", up.ContentType),
			zap.String("detected", sniffed.String()),
		)
		return 0, "", xerrors.ErrUnsupportedMedia
	}

	name := ulid.Make().String() + ext
	path, err := s.store.Put(ctx, name, sniffed.String(), bytes.NewReader(data))
	if err != nil {
		s.logger.Error("failed to store image", zap.String("name", name), zap.Error(err))
		return 0, "", err
	}

	id, err := s.repo.Create(ctx, up.Owner, path, up.IsPrimary, up.Caption)
	if err != nil {
		s.logger.Error("failed to record image, removing blob", zap.String("path", path), zap.Error(err))
		if cleanupErr := s.store.Delete(ctx, path); cleanupErr != nil {
			s.logger.Error("failed to remove orphaned blob", zap.String("path", path), zap.Error(cleanupErr))
		}
		return 0, "", err
	}

	s.logger.Info("image uploaded",
		zap.Int64("image_id", id),
		zap.String("owner", string(up.Owner.Kind)),
		zap.Int64("owner_id", up.Owner.ID),
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)
	s.notifier.Publish(wsdomain.CatalogChange{Entity: wsdomain.EntityImage, ID: id, Action: wsdomain.ActionCreated})

	return id, path, nil
}

// Delete removes the image blob and row. The row is authoritative: a blob
// that cannot be removed is logged and the row is deleted anyway.
func (s *ImageService) Delete(ctx context.Context, id int64) (int64, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.store.Delete(ctx, img.ImagePath); err != nil {
		s.logger.Warn("failed to remove image blob", zap.Int64("image_id", id), zap.String("path", img.ImagePath), zap.Error(err))
	}

	changes, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete image", zap.Int64("image_id", id), zap.Error(err))
		return 0, err
	}

	if changes > 0 {
		s.logger.Info("image deleted", zap.Int64("image_id", id))
		s.notifier.Publish(wsdomain.CatalogChange{Entity: wsdomain.EntityImage, ID: id, Action: wsdomain.ActionDeleted})
	}

	return changes, nil
}

func (s *ImageService) tooLarge() error {
	return fmt.Errorf("%w (max %d bytes)", xerrors.ErrFileTooLarge, s.maxBytes)
}

func validateOwner(owner image.Owner) error {
	switch owner.Kind {
	case image.OwnerProduct, image.OwnerVignette:
		if owner.ID <= 0 {
			return xerrors.Invalid("invalid " + string(owner.Kind) + "_id")
		}
		return nil
	}
	return xerrors.Invalid("exactly one of product_id or vignette_id is required")
}

func declaredTypeAllowed(contentType string) bool {
	contentType = strings.ToLower(contentType)
	for _, t := range allowedTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}
