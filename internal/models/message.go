package models

import "time"

type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"not null;index"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;index"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	IsRead      bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Conversation summarizes all messages between two users.
type Conversation struct {
	OtherUserID uint        `json:"other_user_id"`
	OtherUser   *PublicUser `json:"other_user,omitempty"`
	LastMessage Message     `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Content     string `json:"content" validate:"required,max=5000"`
}
