package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cramr/cramr-backend/internal/models"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, m *models.StudyMaterial) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MaterialRepository) GetByID(ctx context.Context, id uint) (*models.StudyMaterial, error) {
	var m models.StudyMaterial
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *MaterialRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.StudyMaterial, error) {
	var materials []models.StudyMaterial
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at DESC").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) ListByUser(ctx context.Context, userID uint) ([]models.StudyMaterial, error) {
	var materials []models.StudyMaterial
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.StudyMaterial{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
