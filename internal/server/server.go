package server

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"propertymasters_backend/internal/controller"
	"propertymasters_backend/internal/middleware"
	"propertymasters_backend/pkg/features"
	"propertymasters_backend/pkg/store"
)

type Deps struct {
	Store store.Store
	// Notifier may be nil; inquiries are then stored without notification.
	Notifier       controller.Notifier
	EmailTransport string
	Features       features.Flags
	CORSOrigins    string
	// AccessLog turns on fiber's request logger.
	AccessLog bool
}

func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Property Masters API",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	origins := deps.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	setupRoutes(app, deps)
	return app
}

func setupRoutes(app *fiber.App, deps Deps) {
	st := deps.Store
	api := app.Group("/api")

	api.Get("/health", controller.Health(st, deps.EmailTransport))

	// Property routes
	properties := api.Group("/properties")
	properties.Get("/", controller.GetProperties(st))
	properties.Get("/slug/:slug", controller.GetPropertyBySlug(st))
	properties.Get("/:id", controller.GetProperty(st))
	properties.Post("/", controller.CreateProperty(st))
	properties.Put("/:id", controller.UpdateProperty(st))
	properties.Delete("/:id", controller.DeleteProperty(st))

	// Public inquiry submission
	api.Post("/contact-inquiries", controller.CreateContactInquiry(st, deps.Notifier))
	api.Post("/contact",
		middleware.CheckFeatureAccess(deps.Features, features.ContactCompat),
		controller.SubmitContactForm(st, deps.Notifier))

	// Admin inquiry routes, off until there is authentication
	adminOnly := middleware.CheckFeatureAccess(deps.Features, features.AdminInquiries)
	api.Get("/contact-inquiries", adminOnly, controller.GetContactInquiries(st))
	api.Get("/contact-inquiries/:id", adminOnly, controller.GetContactInquiry(st))
	api.Put("/contact-inquiries/:id/status", adminOnly, controller.UpdateContactInquiryStatus(st))
}

// errorHandler catches what handlers return instead of answering: routing
// errors keep their status, everything else is a 500 without details.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		message := fe.Message
		if fe.Code == fiber.StatusNotFound {
			message = "Not found"
		}
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": message,
		})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
