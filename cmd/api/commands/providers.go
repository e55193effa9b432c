package commands

import (
	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/config"
	"github.com/cramr/cramr-backend/internal/service"
	jwtPkg "github.com/cramr/cramr-backend/pkg/jwt"
	"github.com/cramr/cramr-backend/pkg/storage"
)

// Providers for constructors whose plain parameters (durations, sizes,
// locations) wire cannot tell apart by type.

func provideJWTManager(cfg *config.Config) *jwtPkg.Manager {
	return jwtPkg.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
}

func provideAuthService(cfg *config.Config, users service.UserRepository, codes service.CodeStore, mailer service.Mailer, tokens service.TokenIssuer, logger *zap.Logger) *service.AuthService {
	return service.NewAuthService(users, codes, mailer, tokens, cfg.OTPTTL, cfg.ResetTTL, logger)
}

func provideNotificationService(cfg *config.Config, notifications service.NotificationRepository, users service.UserRepository, social service.SocialRepository, logger *zap.Logger) *service.NotificationService {
	return service.NewNotificationService(notifications, users, social, cfg.Location(), logger)
}

func provideMaterialService(cfg *config.Config, materials service.MaterialRepository, events service.EventRepository, users service.UserRepository, store storage.StorageService, logger *zap.Logger) *service.MaterialService {
	return service.NewMaterialService(materials, events, users, store, cfg.MaxUploadSize, logger)
}
