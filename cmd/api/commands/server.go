package commands

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/config"
	"github.com/cramr/cramr-backend/internal/handler"
	"github.com/cramr/cramr-backend/internal/middleware"
	"github.com/cramr/cramr-backend/internal/models"
	jwtPkg "github.com/cramr/cramr-backend/pkg/jwt"
)

// bodyLimitSlack leaves room for multipart framing around the largest upload.
const bodyLimitSlack = 1 << 20

func newFiberApp(cfg *config.Config, handlers *handler.Handlers, tokens *jwtPkg.Manager, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cramr",
		BodyLimit:    int(cfg.MaxUploadSize) + bodyLimitSlack,
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
		// Credentials cannot be combined with a wildcard origin.
		AllowCredentials: !strings.Contains(cfg.CORSOrigins, "*"),
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("Too many requests"))
		},
	}))
	app.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	handler.RegisterRoutes(app, handlers, middleware.AuthMiddleware(tokens, logger))
	return app
}

// errorHandler renders errors that escape a handler, such as unknown routes
// or oversized bodies, in the usual response envelope.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("unhandled request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(code).JSON(models.ErrorResponse(err.Error()))
	}
}
