package commands

import (
	"github.com/google/wire"

	"github.com/cramr/cramr-backend/internal/handler"
	"github.com/cramr/cramr-backend/internal/repository"
	"github.com/cramr/cramr-backend/internal/service"
	"github.com/cramr/cramr-backend/pkg/email"
	jwtPkg "github.com/cramr/cramr-backend/pkg/jwt"
	"github.com/cramr/cramr-backend/pkg/utils"
)

var repositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewSocialRepository,
	repository.NewEventRepository,
	repository.NewAttendeeRepository,
	repository.NewSavedEventRepository,
	repository.NewNotificationRepository,
	repository.NewMessageRepository,
	repository.NewFlashcardRepository,
	repository.NewMaterialRepository,
	repository.NewCodeRepository,

	wire.Bind(new(service.UserRepository), new(*repository.UserRepository)),
	wire.Bind(new(service.SocialRepository), new(*repository.SocialRepository)),
	wire.Bind(new(service.EventRepository), new(*repository.EventRepository)),
	wire.Bind(new(service.AttendeeRepository), new(*repository.AttendeeRepository)),
	wire.Bind(new(service.SavedEventRepository), new(*repository.SavedEventRepository)),
	wire.Bind(new(service.NotificationRepository), new(*repository.NotificationRepository)),
	wire.Bind(new(service.MessageRepository), new(*repository.MessageRepository)),
	wire.Bind(new(service.FlashcardRepository), new(*repository.FlashcardRepository)),
	wire.Bind(new(service.MaterialRepository), new(*repository.MaterialRepository)),
	wire.Bind(new(service.CodeStore), new(*repository.CodeRepository)),
)

var serviceSet = wire.NewSet(
	provideAuthService,
	provideNotificationService,
	provideMaterialService,
	service.NewUserService,
	service.NewSocialService,
	service.NewRSVPService,
	service.NewEventService,
	service.NewMessageService,
	service.NewFlashcardService,

	wire.Bind(new(service.Notifier), new(*service.NotificationService)),
	wire.Bind(new(service.Mailer), new(*email.EmailService)),
	wire.Bind(new(service.TokenIssuer), new(*jwtPkg.Manager)),
)

var handlerSet = wire.NewSet(
	utils.NewValidator,
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewSocialHandler,
	handler.NewEventHandler,
	handler.NewRSVPHandler,
	handler.NewNotificationHandler,
	handler.NewMessageHandler,
	handler.NewFlashcardHandler,
	handler.NewMaterialHandler,
	wire.Struct(new(handler.Handlers), "*"),
)
