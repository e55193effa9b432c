package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/cramr/cramr-backend/internal/models"
)

const MaxSearchLimit = 50

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByIdentifier looks a user up by e-mail or username.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("username").Find(&users).Error
	return users, err
}

// Search matches username or full name, skipping excludeIDs.
func (r *UserRepository) Search(ctx context.Context, query string, excludeIDs []uint, limit int) ([]models.User, error) {
	if limit <= 0 || limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	q := r.db.WithContext(ctx).Model(&models.User{})
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern)
	}
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var users []models.User
	err := q.Order("username").Limit(limit).Find(&users).Error
	return users, err
}

// Update applies column updates; updates keys are column names.
func (r *UserRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	return r.Update(ctx, id, map[string]interface{}{"password": hashedPassword})
}

// Delete removes the user and everything they own, and takes them out of
// other users' follow counters and every event array.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	uid := int64(id)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate).Select("id").First(&models.User{}, id).Error; err != nil {
			return translate(err)
		}

		stmts := []struct {
			sql  string
			args []interface{}
		}{
			{`UPDATE users SET followers = GREATEST(followers - 1, 0), follower_ids = array_remove(follower_ids, ?)
				WHERE id IN (SELECT following_id FROM follows WHERE follower_id = ?)`, []interface{}{uid, id}},
			{`UPDATE users SET following = GREATEST(following - 1, 0), following_ids = array_remove(following_ids, ?)
				WHERE id IN (SELECT follower_id FROM follows WHERE following_id = ?)`, []interface{}{uid, id}},
			{`UPDATE events SET
				invited_ids = array_remove(invited_ids, ?),
				accepted_ids = array_remove(accepted_ids, ?),
				declined_ids = array_remove(declined_ids, ?),
				saved_ids = array_remove(saved_ids, ?),
				rsvped_ids = array_remove(rsvped_ids, ?)
				WHERE ? = ANY(invited_ids || accepted_ids || declined_ids || saved_ids || rsvped_ids)`,
				[]interface{}{uid, uid, uid, uid, uid, uid}},
			{`DELETE FROM event_attendees WHERE user_id = ? OR event_id IN (SELECT id FROM events WHERE creator_id = ?)`, []interface{}{id, id}},
			{`DELETE FROM saved_events WHERE user_id = ? OR event_id IN (SELECT id FROM events WHERE creator_id = ?)`, []interface{}{id, id}},
			{`DELETE FROM notifications WHERE user_id = ? OR sender_id = ?`, []interface{}{id, id}},
			{`DELETE FROM messages WHERE sender_id = ? OR recipient_id = ?`, []interface{}{id, id}},
			{`DELETE FROM flashcards WHERE set_id IN (SELECT id FROM flashcard_sets WHERE user_id = ?)`, []interface{}{id}},
			{`DELETE FROM flashcard_sets WHERE user_id = ?`, []interface{}{id}},
			{`DELETE FROM study_materials WHERE user_id = ?`, []interface{}{id}},
			{`UPDATE study_materials SET event_id = NULL WHERE event_id IN (SELECT id FROM events WHERE creator_id = ?)`, []interface{}{id}},
			{`DELETE FROM follows WHERE follower_id = ? OR following_id = ?`, []interface{}{id, id}},
			{`DELETE FROM blocks WHERE blocker_id = ? OR blocked_id = ?`, []interface{}{id, id}},
			{`DELETE FROM events WHERE creator_id = ?`, []interface{}{id}},
			{`DELETE FROM users WHERE id = ?`, []interface{}{id}},
		}
		for _, s := range stmts {
			if err := tx.Exec(s.sql, s.args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
