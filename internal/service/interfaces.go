package service

import (
	"context"
	"time"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/repository"
	"github.com/cramr/cramr-backend/pkg/email"
	jwtPkg "github.com/cramr/cramr-backend/pkg/jwt"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	Search(ctx context.Context, query string, excludeIDs []uint, limit int) ([]models.User, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	Delete(ctx context.Context, id uint) error
}

type SocialRepository interface {
	CreateFollow(ctx context.Context, followerID, followingID uint) error
	DeleteFollow(ctx context.Context, followerID, followingID uint) error
	FollowExists(ctx context.Context, followerID, followingID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.User, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.User, error)
	CreateBlock(ctx context.Context, blockerID, blockedID uint) error
	DeleteBlock(ctx context.Context, blockerID, blockedID uint) error
	BlockExists(ctx context.Context, blockerID, blockedID uint) (bool, error)
	BlockedUserIDs(ctx context.Context, userID uint) ([]uint, error)
	ListBlocked(ctx context.Context, blockerID uint) ([]models.User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type AttendeeRepository interface {
	Upsert(ctx context.Context, eventID, userID uint, status string) (string, error)
	Delete(ctx context.Context, eventID, userID uint) error
	Get(ctx context.Context, eventID, userID uint) (*models.EventAttendee, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.AttendeeWithUser, error)
	Invite(ctx context.Context, eventID uint, userIDs []uint) ([]uint, error)
}

type SavedEventRepository interface {
	Save(ctx context.Context, userID, eventID uint) error
	Unsave(ctx context.Context, userID, eventID uint) error
	ListByUser(ctx context.Context, userID uint, excludeCreatorIDs []uint) ([]models.Event, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uint, excludeSenderIDs []uint) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uint, excludeSenderIDs []uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id, userID uint) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	Conversation(ctx context.Context, a, b uint) ([]models.Message, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Message, error)
	MarkRead(ctx context.Context, recipientID, senderID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type FlashcardRepository interface {
	CreateSet(ctx context.Context, set *models.FlashcardSet) error
	GetSet(ctx context.Context, id uint) (*models.FlashcardSet, error)
	ListSetsByUser(ctx context.Context, userID uint) ([]models.FlashcardSet, error)
	UpdateSet(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteSet(ctx context.Context, id uint) error
	AddCard(ctx context.Context, card *models.Flashcard) error
	GetCard(ctx context.Context, id uint) (*models.Flashcard, error)
	UpdateCard(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteCard(ctx context.Context, id uint) error
}

type MaterialRepository interface {
	Create(ctx context.Context, m *models.StudyMaterial) error
	GetByID(ctx context.Context, id uint) (*models.StudyMaterial, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.StudyMaterial, error)
	ListByUser(ctx context.Context, userID uint) ([]models.StudyMaterial, error)
	Delete(ctx context.Context, id uint) error
}

// CodeStore keeps short-lived OTP and password reset codes.
type CodeStore interface {
	Save(ctx context.Context, purpose, email, code string, ttl time.Duration) error
	Verify(ctx context.Context, purpose, email, code string) error
}

type Mailer interface {
	SendWelcomeEmail(to, name string) error
	SendOTPEmail(to, name, code string, ttl time.Duration) error
	SendPasswordResetEmail(to, name, code string, ttl time.Duration) error
}

type TokenIssuer interface {
	GenerateToken(userID uint, email string) (string, error)
}

var (
	_ UserRepository         = (*repository.UserRepository)(nil)
	_ SocialRepository       = (*repository.SocialRepository)(nil)
	_ EventRepository        = (*repository.EventRepository)(nil)
	_ AttendeeRepository     = (*repository.AttendeeRepository)(nil)
	_ SavedEventRepository   = (*repository.SavedEventRepository)(nil)
	_ NotificationRepository = (*repository.NotificationRepository)(nil)
	_ MessageRepository      = (*repository.MessageRepository)(nil)
	_ FlashcardRepository    = (*repository.FlashcardRepository)(nil)
	_ MaterialRepository     = (*repository.MaterialRepository)(nil)
	_ CodeStore              = (*repository.CodeRepository)(nil)
	_ Mailer                 = (*email.EmailService)(nil)
	_ TokenIssuer            = (*jwtPkg.Manager)(nil)
)
