package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cramr/cramr-backend/internal/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return translate(r.db.WithContext(ctx).Create(n).Error)
}

// ListByUser returns the newest notifications first, skipping anything sent
// by excludeSenderIDs.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, excludeSenderIDs []uint) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(excludeSenderIDs) > 0 {
		q = q.Where("sender_id NOT IN ?", excludeSenderIDs)
	}
	var notifications []models.Notification
	err := q.Order("created_at DESC, id DESC").Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint, excludeSenderIDs []uint) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false)
	if len(excludeSenderIDs) > 0 {
		q = q.Where("sender_id NOT IN ?", excludeSenderIDs)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// MarkRead returns ErrNotFound when the notification does not belong to userID.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	var n models.Notification
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&n).Error; err != nil {
		return translate(err)
	}
	if n.IsRead {
		return nil
	}
	return r.db.WithContext(ctx).Model(&n).Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
