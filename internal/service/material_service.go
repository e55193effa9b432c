package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/pkg/storage"
	"github.com/cramr/cramr-backend/pkg/utils"
)

// Object key prefixes.
const (
	prefixMaterials       = "materials"
	prefixProfilePictures = "profile-pictures"
	prefixUploads         = "uploads"
)

// Upload describes one incoming file.
type Upload struct {
	FileName    string
	Size        int64
	ContentType string
	Body        io.Reader
}

func (u Upload) validate(maxSize int64) error {
	if strings.TrimSpace(u.FileName) == "" {
		return newError(ErrValidation, "file name is required")
	}
	if u.Size <= 0 {
		return newError(ErrValidation, "file is empty")
	}
	if maxSize > 0 && u.Size > maxSize {
		return newError(ErrValidation, "file exceeds the maximum size of %d bytes", maxSize)
	}
	return nil
}

type MaterialService struct {
	materials MaterialRepository
	events    EventRepository
	users     UserRepository
	storage   storage.StorageService
	maxSize   int64
	logger    *zap.Logger
}

func NewMaterialService(materials MaterialRepository, events EventRepository, users UserRepository, store storage.StorageService, maxSize int64, logger *zap.Logger) *MaterialService {
	return &MaterialService{
		materials: materials,
		events:    events,
		users:     users,
		storage:   store,
		maxSize:   maxSize,
		logger:    logger,
	}
}

// UploadMaterial stores the file and records it, optionally against an event.
func (s *MaterialService) UploadMaterial(ctx context.Context, userID uint, eventID *uint, up Upload) (*models.StudyMaterial, error) {
	if err := up.validate(s.maxSize); err != nil {
		return nil, err
	}
	if eventID != nil {
		if _, err := s.events.GetByID(ctx, *eventID); err != nil {
			return nil, fromRepo(err, "event")
		}
	}

	key := storage.ObjectKey(prefixMaterials, userID, up.FileName)
	url, err := s.storage.Upload(ctx, key, up.Body, up.Size, up.ContentType)
	if err != nil {
		return nil, err
	}

	material := &models.StudyMaterial{
		UserID:    userID,
		EventID:   eventID,
		FileName:  filepath.Base(up.FileName),
		URL:       url,
		ObjectKey: key,
		FileSize:  up.Size,
		MimeType:  up.ContentType,
	}
	if err := s.materials.Create(ctx, material); err != nil {
		s.deleteObject(ctx, key)
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) ListByEvent(ctx context.Context, eventID uint) ([]models.StudyMaterial, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, fromRepo(err, "event")
	}
	return s.materials.ListByEvent(ctx, eventID)
}

func (s *MaterialService) ListByUser(ctx context.Context, userID uint) ([]models.StudyMaterial, error) {
	return s.materials.ListByUser(ctx, userID)
}

// DeleteMaterial removes the row; the stored object is removed best effort.
func (s *MaterialService) DeleteMaterial(ctx context.Context, userID, id uint) error {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return fromRepo(err, "material")
	}
	if material.UserID != userID {
		return newError(ErrForbidden, "you do not own this material")
	}
	if err := s.materials.Delete(ctx, id); err != nil {
		return fromRepo(err, "material")
	}
	s.deleteObject(ctx, material.ObjectKey)
	return nil
}

// UploadProfilePicture accepts images only and points the user's profile at
// the stored object.
func (s *MaterialService) UploadProfilePicture(ctx context.Context, userID uint, up Upload) (*models.UploadedFile, error) {
	if err := up.validate(s.maxSize); err != nil {
		return nil, err
	}
	if !utils.SupportedImageTypes[up.ContentType] {
		return nil, newError(ErrValidation, "unsupported image type %q", up.ContentType)
	}

	key := storage.ObjectKey(prefixProfilePictures, userID, up.FileName)
	url, err := s.storage.Upload(ctx, key, up.Body, up.Size, up.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, userID, map[string]interface{}{"profile_picture_url": url}); err != nil {
		s.deleteObject(ctx, key)
		return nil, fromRepo(err, "user")
	}
	return &models.UploadedFile{URL: url, FileName: filepath.Base(up.FileName), FileSize: up.Size, MimeType: up.ContentType}, nil
}

func (s *MaterialService) UploadFile(ctx context.Context, userID uint, up Upload) (*models.UploadedFile, error) {
	if err := up.validate(s.maxSize); err != nil {
		return nil, err
	}
	key := storage.ObjectKey(prefixUploads, userID, up.FileName)
	url, err := s.storage.Upload(ctx, key, up.Body, up.Size, up.ContentType)
	if err != nil {
		return nil, err
	}
	return &models.UploadedFile{URL: url, FileName: filepath.Base(up.FileName), FileSize: up.Size, MimeType: up.ContentType}, nil
}

func (s *MaterialService) deleteObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored object", zap.String("key", key), zap.Error(err))
	}
}
