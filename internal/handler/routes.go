package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
)

// Handlers groups every route handler so the router can be built in one place.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Social       *SocialHandler
	Event        *EventHandler
	RSVP         *RSVPHandler
	Notification *NotificationHandler
	Message      *MessageHandler
	Flashcard    *FlashcardHandler
	Material     *MaterialHandler
}

// RegisterRoutes mounts the API under /api. Everything registered after
// authMiddleware requires a bearer token.
func RegisterRoutes(app *fiber.App, h *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api")

	// Public routes
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse(fiber.Map{"status": "ok"}, ""))
	})

	auth := api.Group("/auth")
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/send-otp", h.Auth.SendOTP)
	auth.Post("/verify-otp", h.Auth.VerifyOTP)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Post("/change-password", authMiddleware, h.Auth.ChangePassword)

	// Protected routes
	api.Use(authMiddleware)

	users := api.Group("/users")
	users.Get("/", h.User.SearchUsers)
	users.Get("/:id", h.User.GetUser)
	users.Put("/:id", h.User.UpdateUser)
	users.Delete("/:id", h.User.DeleteUser)
	users.Get("/:id/preferences", h.User.GetPreferences)
	users.Put("/:id/preferences", h.User.UpdatePreferences)

	users.Post("/:id/follow", h.Social.Follow)
	users.Delete("/:id/follow/:userId", h.Social.Unfollow)
	users.Get("/:id/followers", h.Social.Followers)
	users.Get("/:id/following", h.Social.Following)
	users.Post("/:id/block", h.Social.Block)
	users.Get("/:id/blocks", h.Social.Blocks)
	users.Get("/:id/blocks/check/:userId", h.Social.CheckBlock)
	users.Delete("/:id/blocks/:blockedId", h.Social.Unblock)

	users.Get("/:id/notifications", h.Notification.List)
	users.Get("/:id/notifications/unread-count", h.Notification.UnreadCount)
	users.Put("/:id/notifications/read-all", h.Notification.MarkAllRead)

	users.Get("/:id/saved-events", h.Event.ListSaved)
	users.Post("/:id/saved-events", h.Event.SaveEvent)
	users.Delete("/:id/saved-events/:eventId", h.Event.UnsaveEvent)

	users.Get("/:id/conversations", h.Message.Conversations)
	users.Get("/:id/flashcard-sets", h.Flashcard.ListSets)
	users.Get("/:id/materials", h.Material.ListUserMaterials)

	notifications := api.Group("/notifications")
	notifications.Put("/:id/read", h.Notification.MarkRead)
	notifications.Delete("/:id", h.Notification.Delete)

	events := api.Group("/events")
	events.Get("/", h.Event.ListEvents)
	events.Post("/", h.Event.CreateEvent)
	events.Get("/:id", h.Event.GetEvent)
	events.Put("/:id", h.Event.UpdateEvent)
	events.Delete("/:id", h.Event.DeleteEvent)

	events.Post("/:eventId/rsvpd", h.RSVP.SetRSVP)
	events.Put("/:eventId/rsvpd", h.RSVP.SetRSVP)
	events.Get("/:eventId/rsvpd", h.RSVP.GetRSVP)
	events.Delete("/:eventId/rsvpd", h.RSVP.DeleteRSVP)
	events.Get("/:eventId/rsvps", h.RSVP.ListRSVPs)
	events.Post("/:eventId/invite", h.RSVP.Invite)

	events.Get("/:eventId/materials", h.Material.ListEventMaterials)
	events.Post("/:eventId/materials", h.Material.UploadEventMaterial)

	messages := api.Group("/messages")
	messages.Post("/", h.Message.Send)
	messages.Get("/:userId/:otherId", h.Message.Conversation)
	messages.Put("/:userId/:otherId/read", h.Message.MarkRead)
	messages.Delete("/:id", h.Message.Delete)

	sets := api.Group("/flashcard-sets")
	sets.Post("/", h.Flashcard.CreateSet)
	sets.Get("/:id", h.Flashcard.GetSet)
	sets.Put("/:id", h.Flashcard.UpdateSet)
	sets.Delete("/:id", h.Flashcard.DeleteSet)
	sets.Post("/:id/cards", h.Flashcard.AddCard)

	cards := api.Group("/flashcards")
	cards.Put("/:id", h.Flashcard.UpdateCard)
	cards.Delete("/:id", h.Flashcard.DeleteCard)

	api.Delete("/materials/:id", h.Material.DeleteMaterial)

	upload := api.Group("/upload")
	upload.Post("/profile-picture", h.Material.UploadProfilePicture)
	upload.Post("/file", h.Material.UploadFile)
}
