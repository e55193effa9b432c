package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/models"
)

const messagePreviewLength = 80

type MessageService struct {
	messages MessageRepository
	users    UserRepository
	social   SocialRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewMessageService(messages MessageRepository, users UserRepository, social SocialRepository, notifier Notifier, logger *zap.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		social:   social,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *MessageService) Send(ctx context.Context, senderID uint, req models.SendMessageRequest) (*models.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, newError(ErrValidation, "content is required")
	}
	if senderID == req.RecipientID {
		return nil, newError(ErrSelfAction, "you cannot message yourself")
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, fromRepo(err, "user")
	}
	if _, err := s.users.GetByID(ctx, req.RecipientID); err != nil {
		return nil, fromRepo(err, "recipient")
	}

	blocked, err := s.social.BlockedUserIDs(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if containsID(blocked, req.RecipientID) {
		return nil, newError(ErrBlocked, "cannot message this user")
	}

	msg := &models.Message{SenderID: senderID, RecipientID: req.RecipientID, Content: content}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotificationInput{
		UserID:   req.RecipientID,
		SenderID: senderID,
		Type:     models.NotificationMessage,
		Message:  fmt.Sprintf("%s: %s", sender.Username, preview(content)),
		Metadata: map[string]interface{}{"message_id": msg.ID},
	})
	return msg, nil
}

// Conversation returns the messages between userID and otherID, oldest first.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uint) ([]models.Message, error) {
	return s.messages.Conversation(ctx, userID, otherID)
}

// Conversations lists one entry per correspondent, most recent first.
func (s *MessageService) Conversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	msgs, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.social.BlockedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	convs := BuildConversations(userID, msgs)
	visible := convs[:0]
	var others []uint
	for _, c := range convs {
		if containsID(blocked, c.OtherUserID) {
			continue
		}
		visible = append(visible, c)
		others = append(others, c.OtherUserID)
	}

	users, err := s.users.ListByIDs(ctx, others)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.PublicUser, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Public()
	}
	for i := range visible {
		if u, ok := byID[visible[i].OtherUserID]; ok {
			visible[i].OtherUser = &u
		}
	}
	return visible, nil
}

func (s *MessageService) MarkConversationRead(ctx context.Context, userID, otherID uint) (int64, error) {
	return s.messages.MarkRead(ctx, userID, otherID)
}

// DeleteMessage is allowed for the sender only.
func (s *MessageService) DeleteMessage(ctx context.Context, id, userID uint) error {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return fromRepo(err, "message")
	}
	if msg.SenderID != userID {
		return newError(ErrForbidden, "only the sender can delete a message")
	}
	return fromRepo(s.messages.Delete(ctx, id), "message")
}

// BuildConversations groups msgs, which must be sorted newest first, by the
// unordered pair of participants. The first message seen for a pair is its
// latest.
func BuildConversations(userID uint, msgs []models.Message) []models.Conversation {
	convs := []models.Conversation{}
	index := map[uint]int{}
	for _, m := range msgs {
		other := m.RecipientID
		if m.SenderID != userID {
			other = m.SenderID
		}
		i, ok := index[other]
		if !ok {
			convs = append(convs, models.Conversation{OtherUserID: other, LastMessage: m})
			i = len(convs) - 1
			index[other] = i
		}
		if m.RecipientID == userID && m.SenderID != userID && !m.IsRead {
			convs[i].UnreadCount++
		}
	}
	return convs
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= messagePreviewLength {
		return s
	}
	return string(r[:messagePreviewLength]) + "…"
}
