package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/lucasferraz/forumtech-backend/internal/config"
	"github.com/lucasferraz/forumtech-backend/internal/handlers"
	"github.com/lucasferraz/forumtech-backend/internal/middleware"
	"github.com/lucasferraz/forumtech-backend/internal/store"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	st store.Store,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	topicHandler *handlers.TopicHandler,
	commentHandler *handlers.CommentHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public
	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes - apply middleware to individual routes
	// so the JWT middleware does not affect the public ones above
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Topics: reads are public, writes require a session. Static segments
	// are registered before the :topicId wildcard.
	topics := api.Group("/topics")
	topics.Get("/", topicHandler.FindAll)
	topics.Get("/search", topicHandler.Search)
	topics.Get("/my", middleware.JWTProtected(cfg), topicHandler.FindMine)
	topics.Get("/user/:userName", topicHandler.FindByUserName)
	topics.Get("/:topicId", topicHandler.FindOne)
	topics.Get("/:topicId/comments", commentHandler.FindByTopic)
	topics.Post("/", middleware.JWTProtected(cfg), topicHandler.Create)
	topics.Patch("/:topicId", middleware.JWTProtected(cfg), topicHandler.Update)
	topics.Delete("/:topicId", middleware.JWTProtected(cfg), topicHandler.Remove)

	// Comments: all protected except the per-topic listing above
	comments := api.Group("/comments", middleware.JWTProtected(cfg))
	comments.Post("/", commentHandler.Create)
	comments.Get("/my", commentHandler.FindMine)
	comments.Patch("/:id", commentHandler.Update)
	comments.Delete("/:id", commentHandler.Remove)

	// Profiles: public lookup by user name, everything else owner-only
	api.Get("/profiles/user/:userName", profileHandler.GetByUserName)
	me := api.Group("/profiles/me", middleware.JWTProtected(cfg))
	me.Get("/", profileHandler.FindMyProfile)
	me.Patch("/", profileHandler.Upsert)
	me.Patch("/visibility", profileHandler.UpdateVisibility)
	me.Post("/avatar", profileHandler.UploadAvatar)
	me.Post("/capa", profileHandler.UploadCapa)

	// Admin moderation panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(st, cfg))
	admin.Post("/users/:id/ban", adminHandler.BanUser)
	admin.Delete("/users/:id/ban", adminHandler.UnbanUser)
	admin.Get("/users/banned", adminHandler.ListBanned)
}
