package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/utils"
)

const defaultSearchLimit = 20

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *UserHandler) SearchUsers(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit <= 0 || limit > 100 {
		limit = defaultSearchLimit
	}

	users, err := h.userService.SearchUsers(c.UserContext(), viewerID, c.Query("q"), limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(users, ""))
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateProfileRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.userService.DeleteUser(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Account deleted"))
}

func (h *UserHandler) GetPreferences(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	prefs, err := h.userService.GetPreferences(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(prefs, ""))
}

func (h *UserHandler) UpdatePreferences(c *fiber.Ctx) error {
	userID, err := requireSelf(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdatePreferencesRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	prefs, err := h.userService.UpdatePreferences(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(prefs, "Preferences updated"))
}
