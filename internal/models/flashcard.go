package models

import "time"

type FlashcardSet struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description"`
	Class       string      `json:"class"`
	Cards       []Flashcard `json:"cards,omitempty" gorm:"foreignKey:SetID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Flashcard struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SetID     uint      `json:"set_id" gorm:"not null;index"`
	Question  string    `json:"question" gorm:"type:text;not null"`
	Answer    string    `json:"answer" gorm:"type:text;not null"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FlashcardSetRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description" validate:"max=1000"`
	Class       string             `json:"class" validate:"max=100"`
	Cards       []FlashcardRequest `json:"cards" validate:"max=500,dive"`
}

type UpdateFlashcardSetRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Class       *string `json:"class" validate:"omitempty,max=100"`
}

type FlashcardRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
	Answer   string `json:"answer" validate:"required,max=2000"`
}

type UpdateFlashcardRequest struct {
	Question *string `json:"question" validate:"omitempty,min=1,max=2000"`
	Answer   *string `json:"answer" validate:"omitempty,min=1,max=2000"`
	Position *int    `json:"position" validate:"omitempty,min=0"`
}
