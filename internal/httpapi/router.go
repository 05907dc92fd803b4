// Package httpapi exposes the booking core as a JSON REST API.
package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tutorbook-app/backend/internal/service"
	"go.uber.org/zap"
)

type Services struct {
	Users     *service.UserService
	Slots     *service.SlotService
	Templates *service.TemplateService
	Waitlist  *service.WaitlistService
}

// NewApp builds the fiber application with all routes registered.
func NewApp(svc Services, jwtSecret string, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(RequestLogger(logger))

	validate := validator.New()

	authHandler := NewAuthHandler(svc.Users, validate, logger)
	slotHandler := NewSlotHandler(svc.Slots, svc.Users, validate, logger)
	templateHandler := NewTemplateHandler(svc.Templates, validate, logger)
	userHandler := NewUserHandler(svc.Users, svc.Slots, validate, logger)
	waitlistHandler := NewWaitlistHandler(svc.Waitlist, validate, logger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api")

	// Public
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/waitlist", waitlistHandler.Create)

	// Authenticated
	authed := api.Group("", Auth(jwtSecret))
	authed.Get("/me", authHandler.Me)
	authed.Get("/slots", slotHandler.List)
	authed.Patch("/slots/:id", slotHandler.Update)
	authed.Post("/slots/:id/cancel", slotHandler.Cancel)

	// Admin only
	admin := authed.Group("", RequireAdmin())
	admin.Post("/slots", slotHandler.Create)
	admin.Delete("/slots/:id", slotHandler.Delete)
	admin.Post("/slots/generate-from-template", slotHandler.GenerateFromTemplate)
	admin.Post("/slots/generate", slotHandler.Generate)

	admin.Get("/weekly-schedule", templateHandler.List)
	admin.Post("/weekly-schedule", templateHandler.Create)
	admin.Patch("/weekly-schedule/:id", templateHandler.Update)
	admin.Delete("/weekly-schedule/:id", templateHandler.Delete)

	admin.Get("/users", userHandler.List)
	admin.Post("/users", userHandler.Create)
	admin.Get("/users/:id", userHandler.Get)
	admin.Patch("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)
	admin.Get("/users/:id/debt", userHandler.Debt)
	admin.Post("/users/:id/settle-all", userHandler.SettleAll)

	admin.Get("/waitlist", waitlistHandler.List)
	admin.Delete("/waitlist/:id", waitlistHandler.Delete)

	admin.Get("/schedule/week-image", slotHandler.WeekImage)

	return app
}
