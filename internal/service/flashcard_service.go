package service

import (
	"context"
	"strings"

	"github.com/cramr/cramr-backend/internal/models"
)

type FlashcardService struct {
	flashcards FlashcardRepository
}

func NewFlashcardService(flashcards FlashcardRepository) *FlashcardService {
	return &FlashcardService{flashcards: flashcards}
}

func (s *FlashcardService) CreateSet(ctx context.Context, userID uint, req models.FlashcardSetRequest) (*models.FlashcardSet, error) {
	set := &models.FlashcardSet{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Class:       req.Class,
	}
	if set.Title == "" {
		return nil, newError(ErrValidation, "title is required")
	}
	for i, c := range req.Cards {
		set.Cards = append(set.Cards, models.Flashcard{Question: c.Question, Answer: c.Answer, Position: i})
	}
	if err := s.flashcards.CreateSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *FlashcardService) GetSet(ctx context.Context, id uint) (*models.FlashcardSet, error) {
	set, err := s.flashcards.GetSet(ctx, id)
	if err != nil {
		return nil, fromRepo(err, "flashcard set")
	}
	return set, nil
}

func (s *FlashcardService) ListSets(ctx context.Context, userID uint) ([]models.FlashcardSet, error) {
	return s.flashcards.ListSetsByUser(ctx, userID)
}

func (s *FlashcardService) ownedSet(ctx context.Context, userID, setID uint) (*models.FlashcardSet, error) {
	set, err := s.GetSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set.UserID != userID {
		return nil, newError(ErrForbidden, "you do not own this flashcard set")
	}
	return set, nil
}

func (s *FlashcardService) UpdateSet(ctx context.Context, userID, setID uint, req models.UpdateFlashcardSetRequest) (*models.FlashcardSet, error) {
	if _, err := s.ownedSet(ctx, userID, setID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, newError(ErrValidation, "title is required")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Class != nil {
		updates["class"] = *req.Class
	}
	if err := s.flashcards.UpdateSet(ctx, setID, updates); err != nil {
		return nil, fromRepo(err, "flashcard set")
	}
	return s.GetSet(ctx, setID)
}

func (s *FlashcardService) DeleteSet(ctx context.Context, userID, setID uint) error {
	if _, err := s.ownedSet(ctx, userID, setID); err != nil {
		return err
	}
	return fromRepo(s.flashcards.DeleteSet(ctx, setID), "flashcard set")
}

func (s *FlashcardService) AddCard(ctx context.Context, userID, setID uint, req models.FlashcardRequest) (*models.Flashcard, error) {
	if _, err := s.ownedSet(ctx, userID, setID); err != nil {
		return nil, err
	}
	card := &models.Flashcard{SetID: setID, Question: req.Question, Answer: req.Answer}
	if err := s.flashcards.AddCard(ctx, card); err != nil {
		return nil, fromRepo(err, "flashcard set")
	}
	return card, nil
}

// ownedCard loads a card and checks that userID owns its set.
func (s *FlashcardService) ownedCard(ctx context.Context, userID, cardID uint) (*models.Flashcard, error) {
	card, err := s.flashcards.GetCard(ctx, cardID)
	if err != nil {
		return nil, fromRepo(err, "flashcard")
	}
	if _, err := s.ownedSet(ctx, userID, card.SetID); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *FlashcardService) UpdateCard(ctx context.Context, userID, cardID uint, req models.UpdateFlashcardRequest) (*models.Flashcard, error) {
	if _, err := s.ownedCard(ctx, userID, cardID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Question != nil {
		updates["question"] = *req.Question
	}
	if req.Answer != nil {
		updates["answer"] = *req.Answer
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if err := s.flashcards.UpdateCard(ctx, cardID, updates); err != nil {
		return nil, fromRepo(err, "flashcard")
	}

	card, err := s.flashcards.GetCard(ctx, cardID)
	if err != nil {
		return nil, fromRepo(err, "flashcard")
	}
	return card, nil
}

func (s *FlashcardService) DeleteCard(ctx context.Context, userID, cardID uint) error {
	if _, err := s.ownedCard(ctx, userID, cardID); err != nil {
		return err
	}
	return fromRepo(s.flashcards.DeleteCard(ctx, cardID), "flashcard")
}
