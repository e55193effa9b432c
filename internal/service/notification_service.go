package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/cramr/cramr-backend/internal/models"
)

// Notifier is what other services use to emit notifications. Delivery is
// best effort and never returns an error.
type Notifier interface {
	Notify(ctx context.Context, in NotificationInput)
}

type NotificationInput struct {
	UserID   uint
	SenderID uint
	EventID  *uint
	Type     string
	Message  string
	Metadata map[string]interface{}
}

type NotificationService struct {
	notifications NotificationRepository
	users         UserRepository
	social        SocialRepository
	logger        *zap.Logger
	loc           *time.Location
	now           func() time.Time
}

func NewNotificationService(notifications NotificationRepository, users UserRepository, social SocialRepository, loc *time.Location, logger *zap.Logger) *NotificationService {
	if loc == nil {
		loc = time.UTC
	}
	return &NotificationService{
		notifications: notifications,
		users:         users,
		social:        social,
		logger:        logger,
		loc:           loc,
		now:           time.Now,
	}
}

// Notify stores the notification. The row is always written; the
// recipient's push preference only lands in the metadata.
func (s *NotificationService) Notify(ctx context.Context, in NotificationInput) {
	log := s.logger.With(
		zap.String("type", in.Type),
		zap.Uint("user_id", in.UserID),
		zap.Uint("sender_id", in.SenderID),
	)

	meta := map[string]interface{}{}
	for k, v := range in.Metadata {
		meta[k] = v
	}
	recipient, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		log.Warn("notification recipient lookup failed", zap.Error(err))
		return
	}
	meta["push"] = recipient.PushNotificationsEnabled

	raw, err := json.Marshal(meta)
	if err != nil {
		log.Warn("failed to encode notification metadata", zap.Error(err))
		return
	}

	n := &models.Notification{
		UserID:   in.UserID,
		SenderID: in.SenderID,
		EventID:  in.EventID,
		Type:     in.Type,
		Message:  in.Message,
		Metadata: datatypes.JSON(raw),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Warn("failed to create notification", zap.Error(err))
	}
}

// ListGrouped hides notifications from users in a block relationship with
// userID.
func (s *NotificationService) ListGrouped(ctx context.Context, userID uint) ([]models.NotificationGroup, error) {
	blocked, err := s.social.BlockedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ns, err := s.notifications.ListByUser(ctx, userID, blocked)
	if err != nil {
		return nil, err
	}
	return GroupNotifications(ns, s.now(), s.loc), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	blocked, err := s.social.BlockedUserIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.notifications.CountUnread(ctx, userID, blocked)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	return fromRepo(s.notifications.MarkRead(ctx, id, userID), "notification")
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID uint) error {
	return fromRepo(s.notifications.Delete(ctx, id, userID), "notification")
}

// GroupNotifications buckets ns, which must be sorted newest first, by
// calendar day in loc. Buckets keep that order and are labelled "Today",
// "Yesterday" or "M/D".
func GroupNotifications(ns []models.Notification, now time.Time, loc *time.Location) []models.NotificationGroup {
	groups := []models.NotificationGroup{}
	index := map[string]int{}

	today := dayOf(now.In(loc))
	yesterday := today.AddDate(0, 0, -1)

	for _, n := range ns {
		day := dayOf(n.CreatedAt.In(loc))
		key := day.Format("2006-01-02")

		i, ok := index[key]
		if !ok {
			var label string
			switch {
			case day.Equal(today):
				label = "Today"
			case day.Equal(yesterday):
				label = "Yesterday"
			default:
				label = fmt.Sprintf("%d/%d", int(day.Month()), day.Day())
			}
			groups = append(groups, models.NotificationGroup{Label: label})
			i = len(groups) - 1
			index[key] = i
		}
		groups[i].Notifications = append(groups[i].Notifications, n)
	}
	return groups
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
