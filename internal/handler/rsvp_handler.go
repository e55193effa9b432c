package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/utils"
)

type RSVPHandler struct {
	rsvpService *service.RSVPService
	validator   *utils.Validator
}

func NewRSVPHandler(rsvpService *service.RSVPService, validator *utils.Validator) *RSVPHandler {
	return &RSVPHandler{
		rsvpService: rsvpService,
		validator:   validator,
	}
}

// SetRSVP serves both POST and PUT. A user_id in the body, when present,
// must be the caller.
func (h *RSVPHandler) SetRSVP(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	var req models.RSVPRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}
	if req.UserID != 0 && req.UserID != userID {
		return respondError(c, errNotSelf)
	}

	attendee, err := h.rsvpService.SetRSVP(c.UserContext(), eventID, userID, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(attendee, "RSVP updated"))
}

func (h *RSVPHandler) GetRSVP(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	attendee, err := h.rsvpService.GetRSVP(c.UserContext(), eventID, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(attendee, ""))
}

func (h *RSVPHandler) DeleteRSVP(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.rsvpService.DeleteRSVP(c.UserContext(), eventID, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "RSVP removed"))
}

func (h *RSVPHandler) ListRSVPs(c *fiber.Ctx) error {
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	attendees, err := h.rsvpService.ListRSVPs(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(attendees, ""))
}

func (h *RSVPHandler) Invite(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	var req models.InviteRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	invited, err := h.rsvpService.InviteUsers(c.UserContext(), eventID, userID, req.UserIDs)
	if err != nil {
		return respondError(c, err)
	}
	if invited == nil {
		invited = []uint{}
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"invited_ids": invited}, "Invitations sent"))
}
