package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cramr/cramr-backend/internal/models"
)

// SocialRepository owns the follow and block graphs together with the
// denormalized follower/following counters and id arrays on users.
type SocialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) *SocialRepository {
	return &SocialRepository{db: db}
}

// CreateFollow inserts followerID -> followingID and bumps both users'
// counters and arrays in one transaction. It returns ErrBlocked when a block
// exists in either direction once both users are locked.
func (r *SocialRepository) CreateFollow(ctx context.Context, followerID, followingID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx, followerID, followingID); err != nil {
			return err
		}

		var blocks int64
		if err := tx.Model(&models.Block{}).
			Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
				followerID, followingID, followingID, followerID).
			Count(&blocks).Error; err != nil {
			return err
		}
		if blocks > 0 {
			return ErrBlocked
		}

		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		if err := tx.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
			return translate(err)
		}

		if err := tx.Exec(`UPDATE users SET following = following + 1, following_ids = array_append(following_ids, ?) WHERE id = ?`,
			int64(followingID), followerID).Error; err != nil {
			return err
		}
		return tx.Exec(`UPDATE users SET followers = followers + 1, follower_ids = array_append(follower_ids, ?) WHERE id = ?`,
			int64(followerID), followingID).Error
	})
}

// DeleteFollow returns ErrNotFound when there was no edge.
func (r *SocialRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx, followerID, followingID); err != nil {
			return err
		}
		removed, err := removeFollowEdge(tx, followerID, followingID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotFound
		}
		return nil
	})
}

func (r *SocialRepository) FollowExists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *SocialRepository) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *SocialRepository) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

// CreateBlock inserts the block and removes follow edges in both directions,
// keeping counters and arrays consistent.
func (r *SocialRepository) CreateBlock(ctx context.Context, blockerID, blockedID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx, blockerID, blockedID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Block{}).
			Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		if err := tx.Create(&models.Block{BlockerID: blockerID, BlockedID: blockedID}).Error; err != nil {
			return translate(err)
		}

		if _, err := removeFollowEdge(tx, blockerID, blockedID); err != nil {
			return err
		}
		_, err := removeFollowEdge(tx, blockedID, blockerID)
		return err
	})
}

// DeleteBlock returns ErrNotFound when there was no block.
func (r *SocialRepository) DeleteBlock(ctx context.Context, blockerID, blockedID uint) error {
	res := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SocialRepository) BlockExists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

// BlockedUserIDs returns everyone userID blocked plus everyone who blocked userID.
func (r *SocialRepository) BlockedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Raw(`
		SELECT blocked_id FROM blocks WHERE blocker_id = ?
		UNION
		SELECT blocker_id FROM blocks WHERE blocked_id = ?`, userID, userID).
		Scan(&ids).Error
	return ids, err
}

func (r *SocialRepository) ListBlocked(ctx context.Context, blockerID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN blocks ON blocks.blocked_id = users.id").
		Where("blocks.blocker_id = ?", blockerID).
		Order("blocks.created_at DESC").
		Find(&users).Error
	return users, err
}

// lockUsers locks both rows in id order so concurrent follow/block calls on
// the same pair cannot deadlock. Missing users yield ErrNotFound.
func lockUsers(tx *gorm.DB, a, b uint) error {
	if a > b {
		a, b = b, a
	}
	var users []models.User
	if err := tx.Clauses(lockForUpdate).Select("id").
		Where("id IN ?", []uint{a, b}).Order("id").Find(&users).Error; err != nil {
		return err
	}
	want := 2
	if a == b {
		want = 1
	}
	if len(users) != want {
		return ErrNotFound
	}
	return nil
}

func removeFollowEdge(tx *gorm.DB, followerID, followingID uint) (bool, error) {
	res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	if err := tx.Exec(`UPDATE users SET following = GREATEST(following - 1, 0), following_ids = array_remove(following_ids, ?) WHERE id = ?`,
		int64(followingID), followerID).Error; err != nil {
		return false, err
	}
	if err := tx.Exec(`UPDATE users SET followers = GREATEST(followers - 1, 0), follower_ids = array_remove(follower_ids, ?) WHERE id = ?`,
		int64(followerID), followingID).Error; err != nil {
		return false, err
	}
	return true, nil
}
