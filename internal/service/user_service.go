package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/pkg/utils"
)

type UserService struct {
	users  UserRepository
	social SocialRepository
	logger *zap.Logger
}

func NewUserService(users UserRepository, social SocialRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		social: social,
		logger: logger,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, "user")
	}
	return user, nil
}

// SearchUsers leaves out anyone in a block relationship with viewerID.
func (s *UserService) SearchUsers(ctx context.Context, viewerID uint, query string, limit int) ([]models.PublicUser, error) {
	var exclude []uint
	if viewerID != 0 {
		blocked, err := s.social.BlockedUserIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		exclude = blocked
	}
	users, err := s.users.Search(ctx, query, exclude, limit)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, "user")
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		username := utils.NormalizeIdentifier(*req.Username)
		if username != user.Username {
			taken, err := s.users.UsernameExists(ctx, username)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, newError(ErrConflict, "username already exists")
			}
			updates["username"] = username
		}
	}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.School != nil {
		updates["school"] = *req.School
	}
	if req.Major != nil {
		updates["major"] = *req.Major
	}
	if req.BannerColor != nil {
		updates["banner_color"] = *req.BannerColor
	}

	if len(updates) > 0 {
		if err := s.users.Update(ctx, id, updates); err != nil {
			return nil, fromRepo(err, "user")
		}
	}
	return s.GetUser(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fromRepo(err, "user")
	}
	s.logger.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

func (s *UserService) GetPreferences(ctx context.Context, id uint) (*models.Preferences, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	prefs := user.Preferences()
	return &prefs, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, id uint, req models.UpdatePreferencesRequest) (*models.Preferences, error) {
	updates := map[string]interface{}{}
	if req.PushNotificationsEnabled != nil {
		updates["push_notifications_enabled"] = *req.PushNotificationsEnabled
	}
	if req.EmailNotificationsEnabled != nil {
		updates["email_notifications_enabled"] = *req.EmailNotificationsEnabled
	}
	if req.SMSNotificationsEnabled != nil {
		updates["sms_notifications_enabled"] = *req.SMSNotificationsEnabled
	}
	if req.EventRemindersEnabled != nil {
		updates["event_reminders_enabled"] = *req.EventRemindersEnabled
	}
	if req.TwoFactorEnabled != nil {
		updates["two_factor_enabled"] = *req.TwoFactorEnabled
	}
	if req.BannerColor != nil {
		updates["banner_color"] = *req.BannerColor
	}

	if len(updates) > 0 {
		if err := s.users.Update(ctx, id, updates); err != nil {
			return nil, fromRepo(err, "user")
		}
	}
	return s.GetPreferences(ctx, id)
}
