package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/utils"
)

type EventHandler struct {
	eventService *service.EventService
	validator    *utils.Validator
}

func NewEventHandler(eventService *service.EventService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

// ListEvents always filters for the authenticated user; a userId query
// parameter naming someone else is ignored.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	creatorID, err := queryID(c, "creatorId")
	if err != nil {
		return respondError(c, err)
	}

	events, err := h.eventService.ListEvents(c.UserContext(), viewerID, creatorID, c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	event, err := h.eventService.GetEvent(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.EventRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateEventRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	event, err := h.eventService.UpdateEvent(c.UserContext(), userID, eventID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.eventService.DeleteEvent(c.UserContext(), userID, eventID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}

func (h *EventHandler) ListSaved(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	events, err := h.eventService.ListSaved(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) SaveEvent(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.SaveEventRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.eventService.SaveEvent(c.UserContext(), userID, req.EventID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(nil, "Event saved"))
}

func (h *EventHandler) UnsaveEvent(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.eventService.UnsaveEvent(c.UserContext(), userID, eventID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event removed from saved"))
}
