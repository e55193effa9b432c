package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	EventFormatInPerson = "in-person"
	EventFormatOnline   = "online"
)

// Attendee statuses. Invited is only ever written by an invitation; the
// remaining three are what an RSVP may set.
const (
	RSVPStatusInvited  = "invited"
	RSVPStatusAccepted = "accepted"
	RSVPStatusDeclined = "declined"
	RSVPStatusPending  = "pending"
)

type Event struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	CreatorID       uint           `json:"creator_id" gorm:"not null;index"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description"`
	Location        string         `json:"location"`
	Class           string         `json:"class"`
	DateAndTime     time.Time      `json:"date_and_time"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null;default:60"`
	Capacity        int            `json:"capacity" gorm:"not null;default:0"` // 0 means unlimited
	EventFormat     string         `json:"event_format" gorm:"not null;default:'in-person'"`
	VirtualRoomLink string         `json:"virtual_room_link"`
	StudyRoom       string         `json:"study_room"`
	Tags            pq.StringArray `json:"tags" gorm:"type:text[];not null;default:'{}'"`

	InvitedIDs  pq.Int64Array `json:"invited_ids" gorm:"column:invited_ids;type:bigint[];not null;default:'{}'"`
	AcceptedIDs pq.Int64Array `json:"accepted_ids" gorm:"column:accepted_ids;type:bigint[];not null;default:'{}'"`
	DeclinedIDs pq.Int64Array `json:"declined_ids" gorm:"column:declined_ids;type:bigint[];not null;default:'{}'"`
	SavedIDs    pq.Int64Array `json:"saved_ids" gorm:"column:saved_ids;type:bigint[];not null;default:'{}'"`
	// RSVPedIDs is the set of attendees whose status is accepted.
	RSVPedIDs pq.Int64Array `json:"rsvped_ids" gorm:"column:rsvped_ids;type:bigint[];not null;default:'{}'"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventAttendee struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   uint      `json:"event_id" gorm:"not null;index;uniqueIndex:idx_event_attendee"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_event_attendee"`
	Status    string    `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttendeeWithUser is one row of an event's RSVP list.
type AttendeeWithUser struct {
	EventID           uint      `json:"event_id"`
	UserID            uint      `json:"user_id"`
	Status            string    `json:"status"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type SavedEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_saved_event"`
	EventID   uint      `json:"event_id" gorm:"not null;index;uniqueIndex:idx_user_saved_event"`
	CreatedAt time.Time `json:"created_at"`
}

type EventRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	Location        string    `json:"location" validate:"max=200"`
	Class           string    `json:"class" validate:"max=100"`
	DateAndTime     time.Time `json:"date_and_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=1,max=1440"`
	Capacity        int       `json:"capacity" validate:"min=0"`
	EventFormat     string    `json:"event_format" validate:"omitempty,event_format"`
	VirtualRoomLink string    `json:"virtual_room_link" validate:"omitempty,url"`
	StudyRoom       string    `json:"study_room" validate:"max=100"`
	Tags            []string  `json:"tags" validate:"max=20,dive,max=40"`
	InvitedIDs      []uint    `json:"invited_ids"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string    `json:"description" validate:"omitempty,max=2000"`
	Location        *string    `json:"location" validate:"omitempty,max=200"`
	Class           *string    `json:"class" validate:"omitempty,max=100"`
	DateAndTime     *time.Time `json:"date_and_time"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,min=1,max=1440"`
	Capacity        *int       `json:"capacity" validate:"omitempty,min=0"`
	EventFormat     *string    `json:"event_format" validate:"omitempty,event_format"`
	VirtualRoomLink *string    `json:"virtual_room_link" validate:"omitempty,url"`
	StudyRoom       *string    `json:"study_room" validate:"omitempty,max=100"`
	Tags            []string   `json:"tags" validate:"omitempty,max=20,dive,max=40"`
}

// EventFilter narrows ListEvents. ExcludeCreatorIDs carries the block set.
type EventFilter struct {
	ExcludeCreatorIDs []uint
	CreatorID         uint
	Query             string
}

type RSVPRequest struct {
	UserID uint   `json:"user_id"`
	Status string `json:"status" validate:"required,rsvp_status"`
}

type InviteRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1,max=100"`
}

type SaveEventRequest struct {
	EventID uint `json:"event_id" validate:"required"`
}
