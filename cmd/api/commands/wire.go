//go:build wireinject
// +build wireinject

package commands

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/config"
	"github.com/cramr/cramr-backend/pkg/database"
	"github.com/cramr/cramr-backend/pkg/email"
	"github.com/cramr/cramr-backend/pkg/storage"
)

func initializeApp(cfg *config.Config, logger *zap.Logger) (*fiber.App, func(), error) {
	wire.Build(
		database.NewDatabase,
		database.NewRedisClient,
		email.NewEmailService,
		provideJWTManager,
		storage.NewS3Storage,
		wire.Bind(new(storage.StorageService), new(*storage.S3Storage)),

		repositorySet,
		serviceSet,
		handlerSet,

		newFiberApp,
	)
	return nil, nil, nil
}
