package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cramr/cramr-backend/internal/models"
)

// SavedEventRepository mirrors saved_events into events.saved_ids.
type SavedEventRepository struct {
	db *gorm.DB
}

func NewSavedEventRepository(db *gorm.DB) *SavedEventRepository {
	return &SavedEventRepository{db: db}
}

func (r *SavedEventRepository) Save(ctx context.Context, userID, eventID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate).Select("id").First(&models.Event{}, eventID).Error; err != nil {
			return translate(err)
		}

		var count int64
		if err := tx.Model(&models.SavedEvent{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		if err := tx.Create(&models.SavedEvent{UserID: userID, EventID: eventID}).Error; err != nil {
			return translate(err)
		}
		return tx.Exec(`UPDATE events SET saved_ids = array_append(saved_ids, ?) WHERE id = ? AND NOT (? = ANY(saved_ids))`,
			int64(userID), eventID, int64(userID)).Error
	})
}

func (r *SavedEventRepository) Unsave(ctx context.Context, userID, eventID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate).Select("id").First(&models.Event{}, eventID).Error; err != nil {
			return translate(err)
		}

		res := tx.Where("user_id = ? AND event_id = ?", userID, eventID).Delete(&models.SavedEvent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Exec(`UPDATE events SET saved_ids = array_remove(saved_ids, ?) WHERE id = ?`,
			int64(userID), eventID).Error
	})
}

// ListByUser returns saved events newest save first, skipping events
// created by excludeCreatorIDs.
func (r *SavedEventRepository) ListByUser(ctx context.Context, userID uint, excludeCreatorIDs []uint) ([]models.Event, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN saved_events ON saved_events.event_id = events.id").
		Where("saved_events.user_id = ?", userID)
	if len(excludeCreatorIDs) > 0 {
		q = q.Where("events.creator_id NOT IN ?", excludeCreatorIDs)
	}
	var events []models.Event
	err := q.Order("saved_events.created_at DESC").Find(&events).Error
	return events, err
}
