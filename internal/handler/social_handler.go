package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/utils"
)

// SocialHandler serves the follow and block routes under /users/:id.
type SocialHandler struct {
	socialService *service.SocialService
	validator     *utils.Validator
}

func NewSocialHandler(socialService *service.SocialService, validator *utils.Validator) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
		validator:     validator,
	}
}

func (h *SocialHandler) Follow(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.FollowRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.socialService.Follow(c.UserContext(), userID, req.UserID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(nil, "Followed successfully"))
}

func (h *SocialHandler) Unfollow(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	targetID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.socialService.Unfollow(c.UserContext(), userID, targetID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Unfollowed successfully"))
}

func (h *SocialHandler) Followers(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	users, err := h.socialService.ListFollowers(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(users, ""))
}

func (h *SocialHandler) Following(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	users, err := h.socialService.ListFollowing(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(users, ""))
}

func (h *SocialHandler) Block(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.BlockRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.socialService.Block(c.UserContext(), userID, req.BlockedID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(nil, "User blocked"))
}

func (h *SocialHandler) Unblock(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	blockedID, err := paramID(c, "blockedId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.socialService.Unblock(c.UserContext(), userID, blockedID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "User unblocked"))
}

func (h *SocialHandler) Blocks(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	users, err := h.socialService.ListBlocks(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(users, ""))
}

func (h *SocialHandler) CheckBlock(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	otherID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	status, err := h.socialService.CheckBlock(c.UserContext(), userID, otherID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(status, ""))
}
