package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/repository"
)

type SocialService struct {
	social   SocialRepository
	users    UserRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewSocialService(social SocialRepository, users UserRepository, notifier Notifier, logger *zap.Logger) *SocialService {
	return &SocialService{
		social:   social,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// isBlockedPair reports whether a block exists in either direction.
func (s *SocialService) isBlockedPair(ctx context.Context, a, b uint) (bool, error) {
	blocked, err := s.social.BlockExists(ctx, a, b)
	if err != nil || blocked {
		return blocked, err
	}
	return s.social.BlockExists(ctx, b, a)
}

func (s *SocialService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return newError(ErrSelfAction, "you cannot follow yourself")
	}

	follower, err := s.users.GetByID(ctx, followerID)
	if err != nil {
		return fromRepo(err, "user")
	}
	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		return fromRepo(err, "user")
	}

	blocked, err := s.isBlockedPair(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if blocked {
		return newError(ErrBlocked, "cannot follow this user")
	}

	if err := s.social.CreateFollow(ctx, followerID, followingID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return newError(ErrConflict, "already following this user")
		case errors.Is(err, repository.ErrBlocked):
			return newError(ErrBlocked, "cannot follow this user")
		}
		return fromRepo(err, "user")
	}

	s.notifier.Notify(ctx, NotificationInput{
		UserID:   followingID,
		SenderID: followerID,
		Type:     models.NotificationFollow,
		Message:  fmt.Sprintf("%s started following you", follower.Username),
		Metadata: map[string]interface{}{"follower_id": followerID},
	})
	return nil
}

func (s *SocialService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	if err := s.social.DeleteFollow(ctx, followerID, followingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "not following this user")
		}
		return err
	}
	return nil
}

func (s *SocialService) Block(ctx context.Context, blockerID, blockedID uint) error {
	if blockerID == blockedID {
		return newError(ErrSelfAction, "you cannot block yourself")
	}
	if err := s.social.CreateBlock(ctx, blockerID, blockedID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return newError(ErrConflict, "user is already blocked")
		}
		return fromRepo(err, "user")
	}
	s.logger.Info("user blocked", zap.Uint("blocker_id", blockerID), zap.Uint("blocked_id", blockedID))
	return nil
}

func (s *SocialService) Unblock(ctx context.Context, blockerID, blockedID uint) error {
	if err := s.social.DeleteBlock(ctx, blockerID, blockedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "user is not blocked")
		}
		return err
	}
	return nil
}

// CheckBlock reports the block state from userID's point of view.
func (s *SocialService) CheckBlock(ctx context.Context, userID, otherID uint) (*models.BlockStatus, error) {
	isBlocked, err := s.social.BlockExists(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	isBlockedBy, err := s.social.BlockExists(ctx, otherID, userID)
	if err != nil {
		return nil, err
	}
	return &models.BlockStatus{IsBlocked: isBlocked, IsBlockedBy: isBlockedBy}, nil
}

func (s *SocialService) ListBlocks(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	users, err := s.social.ListBlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (s *SocialService) ListFollowers(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fromRepo(err, "user")
	}
	users, err := s.social.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (s *SocialService) ListFollowing(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fromRepo(err, "user")
	}
	users, err := s.social.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
