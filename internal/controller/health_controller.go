package controller

import (
	"github.com/gofiber/fiber/v2"

	"propertymasters_backend/pkg/store"
)

// Health reports the store driver and notification transport in use.
func Health(st store.Store, emailTransport string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "ok",
			"store":          st.Driver(),
			"emailTransport": emailTransport,
		})
	}
}
