package models

import "time"

type StudyMaterial struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	EventID   *uint     `json:"event_id,omitempty" gorm:"index"`
	FileName  string    `json:"file_name" gorm:"not null"`
	URL       string    `json:"url" gorm:"not null"`
	ObjectKey string    `json:"-" gorm:"not null"`
	FileSize  int64     `json:"file_size" gorm:"not null"`
	MimeType  string    `json:"mime_type" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadedFile is what the upload endpoints return.
type UploadedFile struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}
