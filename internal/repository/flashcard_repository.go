package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cramr/cramr-backend/internal/models"
)

type FlashcardRepository struct {
	db *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

// CreateSet inserts the set together with its cards.
func (r *FlashcardRepository) CreateSet(ctx context.Context, set *models.FlashcardSet) error {
	return translate(r.db.WithContext(ctx).Create(set).Error)
}

func (r *FlashcardRepository) GetSet(ctx context.Context, id uint) (*models.FlashcardSet, error) {
	var set models.FlashcardSet
	err := r.db.WithContext(ctx).
		Preload("Cards", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		First(&set, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &set, nil
}

func (r *FlashcardRepository) ListSetsByUser(ctx context.Context, userID uint) ([]models.FlashcardSet, error) {
	var sets []models.FlashcardSet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&sets).Error
	return sets, err
}

func (r *FlashcardRepository) UpdateSet(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.FlashcardSet{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FlashcardRepository) DeleteSet(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", id).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.FlashcardSet{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddCard appends the card after the current last position.
func (r *FlashcardRepository) AddCard(ctx context.Context, card *models.Flashcard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate).Select("id").First(&models.FlashcardSet{}, card.SetID).Error; err != nil {
			return translate(err)
		}
		var next int
		if err := tx.Model(&models.Flashcard{}).
			Select("COALESCE(MAX(position) + 1, 0)").
			Where("set_id = ?", card.SetID).
			Scan(&next).Error; err != nil {
			return err
		}
		card.Position = next
		if err := tx.Create(card).Error; err != nil {
			return err
		}
		return tx.Model(&models.FlashcardSet{}).Where("id = ?", card.SetID).Update("updated_at", gorm.Expr("NOW()")).Error
	})
}

func (r *FlashcardRepository) GetCard(ctx context.Context, id uint) (*models.Flashcard, error) {
	var card models.Flashcard
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		return nil, translate(err)
	}
	return &card, nil
}

func (r *FlashcardRepository) UpdateCard(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Flashcard{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FlashcardRepository) DeleteCard(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Flashcard{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
