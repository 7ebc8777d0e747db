package routes

import (
	"time"

	"github.com/dommaster/backend/internal/handlers"
	"github.com/dommaster/backend/internal/middleware"
	"github.com/dommaster/backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	db *gorm.DB,
	sessions *session.Manager,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	contactHandler *handlers.ContactHandler,
	healthHandler *handlers.HealthHandler,
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

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/google", authHandler.GoogleSignIn)
	auth.Get("/confirm-email", authHandler.ConfirmEmail)
	auth.Get("/check", authHandler.Check)
	auth.Post("/logout", authHandler.Logout)

	// Catalog — public reads (visibility by role), admin writes.
	// Guards go on the individual write routes so the shared /services
	// prefix stays public for reads.
	api.Get("/services", catalogHandler.List)
	api.Get("/services/:id", catalogHandler.Get)

	sessionGuard := middleware.SessionProtected(sessions)
	adminGuard := middleware.AdminRequired(db)
	api.Post("/services", sessionGuard, adminGuard, catalogHandler.Create)
	api.Put("/services/:id", sessionGuard, adminGuard, catalogHandler.Update)
	api.Delete("/services/:id", sessionGuard, adminGuard, catalogHandler.Delete)

	// Orders — authenticated users only
	orders := api.Group("/orders", sessionGuard)
	orders.Post("/", orderHandler.Create)
	orders.Get("/my", orderHandler.ListMine)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Contact form
	api.Post("/contact", contactHandler.Send)
}
