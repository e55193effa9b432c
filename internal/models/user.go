package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	Username          string `json:"username" gorm:"uniqueIndex;not null"`
	Email             string `json:"email" gorm:"uniqueIndex;not null"`
	Password          string `json:"-" gorm:"not null"`
	FullName          string `json:"full_name"`
	Bio               string `json:"bio"`
	School            string `json:"school"`
	Major             string `json:"major"`
	BannerColor       string `json:"banner_color"`
	ProfilePictureURL string `json:"profile_picture_url"`

	PushNotificationsEnabled  bool `json:"push_notifications_enabled" gorm:"not null;default:true"`
	EmailNotificationsEnabled bool `json:"email_notifications_enabled" gorm:"not null;default:true"`
	SMSNotificationsEnabled   bool `json:"sms_notifications_enabled" gorm:"not null;default:false"`
	EventRemindersEnabled     bool `json:"event_reminders_enabled" gorm:"not null;default:true"`
	TwoFactorEnabled          bool `json:"two_factor_enabled" gorm:"not null;default:false"`
	EmailVerified             bool `json:"email_verified" gorm:"not null;default:false"`

	// Followers and Following always equal the number of follow rows on each
	// side; FollowerIDs and FollowingIDs mirror those rows.
	Followers    int           `json:"followers" gorm:"not null;default:0"`
	Following    int           `json:"following" gorm:"not null;default:0"`
	FollowerIDs  pq.Int64Array `json:"follower_ids" gorm:"column:follower_ids;type:bigint[];not null;default:'{}'"`
	FollowingIDs pq.Int64Array `json:"following_ids" gorm:"column:following_ids;type:bigint[];not null;default:'{}'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the subset of a profile shown in lists of other users.
type PublicUser struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	School            string `json:"school"`
	Major             string `json:"major"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                u.ID,
		Username:          u.Username,
		FullName:          u.FullName,
		School:            u.School,
		Major:             u.Major,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,max=100"`
	Username    *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	School      *string `json:"school" validate:"omitempty,max=100"`
	Major       *string `json:"major" validate:"omitempty,max=100"`
	BannerColor *string `json:"banner_color" validate:"omitempty,hexcolor"`
}

type Preferences struct {
	PushNotificationsEnabled  bool   `json:"push_notifications_enabled"`
	EmailNotificationsEnabled bool   `json:"email_notifications_enabled"`
	SMSNotificationsEnabled   bool   `json:"sms_notifications_enabled"`
	EventRemindersEnabled     bool   `json:"event_reminders_enabled"`
	TwoFactorEnabled          bool   `json:"two_factor_enabled"`
	BannerColor               string `json:"banner_color"`
}

func (u *User) Preferences() Preferences {
	return Preferences{
		PushNotificationsEnabled:  u.PushNotificationsEnabled,
		EmailNotificationsEnabled: u.EmailNotificationsEnabled,
		SMSNotificationsEnabled:   u.SMSNotificationsEnabled,
		EventRemindersEnabled:     u.EventRemindersEnabled,
		TwoFactorEnabled:          u.TwoFactorEnabled,
		BannerColor:               u.BannerColor,
	}
}

type UpdatePreferencesRequest struct {
	PushNotificationsEnabled  *bool   `json:"push_notifications_enabled"`
	EmailNotificationsEnabled *bool   `json:"email_notifications_enabled"`
	SMSNotificationsEnabled   *bool   `json:"sms_notifications_enabled"`
	EventRemindersEnabled     *bool   `json:"event_reminders_enabled"`
	TwoFactorEnabled          *bool   `json:"two_factor_enabled"`
	BannerColor               *string `json:"banner_color" validate:"omitempty,hexcolor"`
}
