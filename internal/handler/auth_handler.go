package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.Signup(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	if resp.OTPRequired {
		return c.JSON(models.SuccessResponse(resp, "Verification code sent"))
	}
	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req models.SendOTPRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.SendOTP(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Verification code sent"))
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.VerifyOTP(c.UserContext(), req.Email, req.Code)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(resp, "Verification successful"))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "If the address is registered, a reset code has been sent"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.ResetPassword(c.UserContext(), req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Password reset successful"))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.ChangePasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.ChangePassword(c.UserContext(), userID, req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Password changed successfully"))
}
