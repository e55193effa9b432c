package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification type tags.
const (
	NotificationFollow               = "follow"
	NotificationMessage              = "message"
	NotificationEventInvite          = "event_invite"
	NotificationEventRSVP            = "event_rsvp"
	NotificationEventRSVPSelf        = "event_rsvp_self"
	NotificationEventRSVPDecline     = "event_rsvp_decline"
	NotificationEventRSVPDeclineSelf = "event_rsvp_decline_self"
	NotificationEventRSVPPending     = "event_rsvp_pending"
	NotificationEventRSVPPendingSelf = "event_rsvp_pending_self"
	NotificationEventRSVPCancel      = "event_rsvp_cancel"
	NotificationEventRSVPCancelSelf  = "event_rsvp_cancel_self"
)

type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	SenderID  uint           `json:"sender_id" gorm:"not null;index"`
	EventID   *uint          `json:"event_id,omitempty" gorm:"index"`
	Type      string         `json:"type" gorm:"type:varchar(40);not null;index"`
	Message   string         `json:"message"`
	Metadata  datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	IsRead    bool           `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}

// NotificationGroup is one calendar-day bucket: "Today", "Yesterday" or "M/D".
type NotificationGroup struct {
	Label         string         `json:"label"`
	Notifications []Notification `json:"notifications"`
}
