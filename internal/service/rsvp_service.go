package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/repository"
)

// rsvpNotices maps an RSVP status to the notification types sent to the
// event creator and to the user who responded.
var rsvpNotices = map[string]struct {
	creator, self string
	verb          string
}{
	models.RSVPStatusAccepted: {models.NotificationEventRSVP, models.NotificationEventRSVPSelf, "is going to"},
	models.RSVPStatusDeclined: {models.NotificationEventRSVPDecline, models.NotificationEventRSVPDeclineSelf, "declined"},
	models.RSVPStatusPending:  {models.NotificationEventRSVPPending, models.NotificationEventRSVPPendingSelf, "might attend"},
	"":                        {models.NotificationEventRSVPCancel, models.NotificationEventRSVPCancelSelf, "cancelled their RSVP to"},
}

type RSVPService struct {
	events    EventRepository
	attendees AttendeeRepository
	social    SocialRepository
	users     UserRepository
	notifier  Notifier
	logger    *zap.Logger
}

func NewRSVPService(events EventRepository, attendees AttendeeRepository, social SocialRepository, users UserRepository, notifier Notifier, logger *zap.Logger) *RSVPService {
	return &RSVPService{
		events:    events,
		attendees: attendees,
		social:    social,
		users:     users,
		notifier:  notifier,
		logger:    logger,
	}
}

func validRSVPStatus(status string) bool {
	switch status {
	case models.RSVPStatusAccepted, models.RSVPStatusDeclined, models.RSVPStatusPending:
		return true
	}
	return false
}

// SetRSVP upserts userID's attendance. Notifications go out only when the
// status actually changed.
func (s *RSVPService) SetRSVP(ctx context.Context, eventID, userID uint, status string) (*models.EventAttendee, error) {
	if !validRSVPStatus(status) {
		return nil, newError(ErrValidation, "status must be one of accepted, declined, pending")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fromRepo(err, "event")
	}
	if event.CreatorID != userID {
		blocked, err := s.blockedEither(ctx, userID, event.CreatorID)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, newError(ErrBlocked, "you cannot RSVP to this event")
		}
	}

	previous, err := s.attendees.Upsert(ctx, eventID, userID, status)
	if err != nil {
		return nil, fromRepo(err, "event")
	}

	s.logger.Debug("rsvp updated",
		zap.Uint("event_id", eventID),
		zap.Uint("user_id", userID),
		zap.String("from", previous),
		zap.String("to", status),
	)

	if previous != status {
		s.notifyRSVP(ctx, event, userID, status)
	}

	attendee, err := s.attendees.Get(ctx, eventID, userID)
	if err != nil {
		return nil, fromRepo(err, "rsvp")
	}
	return attendee, nil
}

func (s *RSVPService) DeleteRSVP(ctx context.Context, eventID, userID uint) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return fromRepo(err, "event")
	}
	if err := s.attendees.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "rsvp not found")
		}
		return err
	}
	s.notifyRSVP(ctx, event, userID, "")
	return nil
}

func (s *RSVPService) GetRSVP(ctx context.Context, eventID, userID uint) (*models.EventAttendee, error) {
	attendee, err := s.attendees.Get(ctx, eventID, userID)
	if err != nil {
		return nil, fromRepo(err, "rsvp")
	}
	return attendee, nil
}

func (s *RSVPService) ListRSVPs(ctx context.Context, eventID uint) ([]models.AttendeeWithUser, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, fromRepo(err, "event")
	}
	return s.attendees.ListByEvent(ctx, eventID)
}

// InviteUsers invites userIDs to the inviter's event. The inviter, repeats
// and anyone in a block relationship with the inviter are skipped. It
// returns the users that were newly invited.
func (s *RSVPService) InviteUsers(ctx context.Context, eventID, inviterID uint, userIDs []uint) ([]uint, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fromRepo(err, "event")
	}
	if event.CreatorID != inviterID {
		return nil, newError(ErrForbidden, "only the event creator can invite users")
	}

	blocked, err := s.social.BlockedUserIDs(ctx, inviterID)
	if err != nil {
		return nil, err
	}

	seen := map[uint]bool{}
	var candidates []uint
	for _, id := range userIDs {
		if id == 0 || id == inviterID || seen[id] || containsID(blocked, id) {
			continue
		}
		seen[id] = true
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return []uint{}, nil
	}

	existing, err := s.users.ListByIDs(ctx, candidates)
	if err != nil {
		return nil, err
	}
	known := make([]uint, 0, len(existing))
	for _, u := range existing {
		known = append(known, u.ID)
	}

	invited, err := s.attendees.Invite(ctx, eventID, known)
	if err != nil {
		return nil, fromRepo(err, "event")
	}

	inviterName := s.username(ctx, inviterID)
	for _, id := range invited {
		s.notifier.Notify(ctx, NotificationInput{
			UserID:   id,
			SenderID: inviterID,
			EventID:  &event.ID,
			Type:     models.NotificationEventInvite,
			Message:  fmt.Sprintf("%s invited you to %s", inviterName, event.Title),
			Metadata: map[string]interface{}{"event_title": event.Title},
		})
	}
	if invited == nil {
		invited = []uint{}
	}
	return invited, nil
}

func (s *RSVPService) blockedEither(ctx context.Context, a, b uint) (bool, error) {
	blocked, err := s.social.BlockExists(ctx, a, b)
	if err != nil || blocked {
		return blocked, err
	}
	return s.social.BlockExists(ctx, b, a)
}

func (s *RSVPService) username(ctx context.Context, id uint) string {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "Someone"
	}
	return u.Username
}

// notifyRSVP tells the creator (unless they responded to their own event)
// and the responding user. An empty status means the RSVP was cancelled.
func (s *RSVPService) notifyRSVP(ctx context.Context, event *models.Event, userID uint, status string) {
	notice, ok := rsvpNotices[status]
	if !ok {
		return
	}
	meta := map[string]interface{}{"event_title": event.Title, "status": status}

	if event.CreatorID != userID {
		s.notifier.Notify(ctx, NotificationInput{
			UserID:   event.CreatorID,
			SenderID: userID,
			EventID:  &event.ID,
			Type:     notice.creator,
			Message:  fmt.Sprintf("%s %s %s", s.username(ctx, userID), notice.verb, event.Title),
			Metadata: meta,
		})
	}
	s.notifier.Notify(ctx, NotificationInput{
		UserID:   userID,
		SenderID: userID,
		EventID:  &event.ID,
		Type:     notice.self,
		Message:  selfRSVPMessage(status, event.Title),
		Metadata: meta,
	})
}

func selfRSVPMessage(status, title string) string {
	switch status {
	case models.RSVPStatusAccepted:
		return fmt.Sprintf("You're going to %s", title)
	case models.RSVPStatusDeclined:
		return fmt.Sprintf("You declined %s", title)
	case models.RSVPStatusPending:
		return fmt.Sprintf("You marked %s as maybe", title)
	}
	return fmt.Sprintf("You cancelled your RSVP to %s", title)
}
