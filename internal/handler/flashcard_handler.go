package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/utils"
)

type FlashcardHandler struct {
	flashcardService *service.FlashcardService
	validator        *utils.Validator
}

func NewFlashcardHandler(flashcardService *service.FlashcardService, validator *utils.Validator) *FlashcardHandler {
	return &FlashcardHandler{
		flashcardService: flashcardService,
		validator:        validator,
	}
}

func (h *FlashcardHandler) ListSets(c *fiber.Ctx) error {
	ownerID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	sets, err := h.flashcardService.ListSets(c.UserContext(), ownerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(sets, ""))
}

func (h *FlashcardHandler) CreateSet(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.FlashcardSetRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	set, err := h.flashcardService.CreateSet(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(set, "Flashcard set created"))
}

func (h *FlashcardHandler) GetSet(c *fiber.Ctx) error {
	setID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	set, err := h.flashcardService.GetSet(c.UserContext(), setID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(set, ""))
}

func (h *FlashcardHandler) UpdateSet(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	setID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateFlashcardSetRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	set, err := h.flashcardService.UpdateSet(c.UserContext(), userID, setID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(set, "Flashcard set updated"))
}

func (h *FlashcardHandler) DeleteSet(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	setID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.flashcardService.DeleteSet(c.UserContext(), userID, setID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Flashcard set deleted"))
}

func (h *FlashcardHandler) AddCard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	setID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.FlashcardRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	card, err := h.flashcardService.AddCard(c.UserContext(), userID, setID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(card, "Flashcard added"))
}

func (h *FlashcardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	cardID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateFlashcardRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	card, err := h.flashcardService.UpdateCard(c.UserContext(), userID, cardID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(card, "Flashcard updated"))
}

func (h *FlashcardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	cardID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.flashcardService.DeleteCard(c.UserContext(), userID, cardID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Flashcard deleted"))
}
