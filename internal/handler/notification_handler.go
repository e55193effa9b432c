package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	groups, err := h.notificationService.ListGrouped(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(groups, ""))
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.notificationService.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"count": count}, ""))
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.notificationService.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"updated": updated}, "All notifications marked as read"))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.notificationService.MarkRead(c.UserContext(), id, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Notification marked as read"))
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.notificationService.Delete(c.UserContext(), id, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Notification deleted"))
}
