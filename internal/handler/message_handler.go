package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/utils"
)

type MessageHandler struct {
	messageService *service.MessageService
	validator      *utils.Validator
}

func NewMessageHandler(messageService *service.MessageService, validator *utils.Validator) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validator:      validator,
	}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.SendMessageRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	msg, err := h.messageService.Send(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(msg, "Message sent"))
}

func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	convs, err := h.messageService.Conversations(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(convs, ""))
}

func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	otherID, err := paramID(c, "otherId")
	if err != nil {
		return respondError(c, err)
	}

	msgs, err := h.messageService.Conversation(c.UserContext(), userID, otherID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(msgs, ""))
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	otherID, err := paramID(c, "otherId")
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.messageService.MarkConversationRead(c.UserContext(), userID, otherID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"updated": updated}, "Conversation marked as read"))
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.messageService.DeleteMessage(c.UserContext(), id, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Message deleted"))
}
