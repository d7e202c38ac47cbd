package middleware

import (
	"propertymasters_backend/pkg/features"

	"github.com/gofiber/fiber/v2"
)

// CheckFeatureAccess hides a route group behind a feature flag. A disabled
// route answers exactly like an unknown one.
func CheckFeatureAccess(flags features.Flags, feature features.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !flags.Enabled(feature) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Not found",
			})
		}
		return c.Next()
	}
}
