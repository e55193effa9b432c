package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/middleware"
	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/utils"
)

var (
	errUnauthenticated = errors.New("user not authenticated")
	errNotSelf         = &service.Error{Kind: service.ErrForbidden, Msg: "you can only act on your own account"}
)

func currentUserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals(middleware.LocalUserID).(uint)
	if !ok || id == 0 {
		return 0, errUnauthenticated
	}
	return id, nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, &service.Error{Kind: service.ErrValidation, Msg: "invalid " + name}
	}
	return uint(id), nil
}

// queryID parses an optional numeric query parameter; absent means 0.
func queryID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, &service.Error{Kind: service.ErrValidation, Msg: "invalid " + name}
	}
	return uint(id), nil
}

// requireSelf returns the authenticated user's ID when it matches the :name
// route parameter.
func requireSelf(c *fiber.Ctx, name string) (uint, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return 0, err
	}
	id, err := paramID(c, name)
	if err != nil {
		return 0, err
	}
	if id != userID {
		return 0, errNotSelf
	}
	return userID, nil
}

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, v *utils.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return &service.Error{Kind: service.ErrValidation, Msg: "Invalid request body"}
	}
	if err := v.Struct(dst); err != nil {
		return &service.Error{Kind: service.ErrValidation, Msg: err.Error()}
	}
	return nil
}

// respondError writes err with the status its kind maps to.
func respondError(c *fiber.Ctx, err error) error {
	var conflict *service.SignupConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(models.ErrorsResponse(conflict.Errors))
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, errUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrSelfAction),
		errors.Is(err, service.ErrInvalidCode):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrBlocked):
		status = fiber.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(models.ErrorResponse("request timed out"))
	}
	return c.Status(status).JSON(models.ErrorResponse(err.Error()))
}
