package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// Block is a directed edge. A block in either direction hides each user's
// events from the other and forbids following.
type Block struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlockerID uint      `json:"blocker_id" gorm:"not null;index;uniqueIndex:idx_blocker_blocked"`
	BlockedID uint      `json:"blocked_id" gorm:"not null;index;uniqueIndex:idx_blocker_blocked"`
	CreatedAt time.Time `json:"created_at"`
}

type FollowRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

type BlockRequest struct {
	BlockedID uint `json:"blocked_id" validate:"required"`
}

type BlockStatus struct {
	IsBlocked   bool `json:"is_blocked"`
	IsBlockedBy bool `json:"is_blocked_by"`
}
