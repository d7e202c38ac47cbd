package controller

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"propertymasters_backend/internal/model"
	"propertymasters_backend/pkg/utils/validation"
)

// Notifier relays a stored inquiry to the operator inbox.
type Notifier interface {
	SendInquiryNotification(ctx context.Context, inquiry model.ContactInquiry) error
}

// readObject decodes the request body. A nil error with a nil Object never
// happens; malformed bodies come back as validation.ErrInvalidJSON.
func readObject(c *fiber.Ctx) (validation.Object, error) {
	return validation.DecodeObject(c.Body())
}

func invalidInput(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid input",
	})
}

// badRequest answers a parse failure: field errors become the details map,
// anything else is treated as a malformed body.
func badRequest(c *fiber.Ctx, err error) error {
	if ve, ok := validation.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": ve.Fields,
		})
	}
	return invalidInput(c)
}

// serverError logs the cause and answers with the route's generic message.
func serverError(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}

// notifyOperator is best-effort: the inquiry is already stored, so a failed
// notification is logged and never changes the response.
func notifyOperator(c *fiber.Ctx, notifier Notifier, inquiry *model.ContactInquiry) {
	if notifier == nil {
		return
	}
	if err := notifier.SendInquiryNotification(c.UserContext(), *inquiry); err != nil {
		log.Printf("Failed to send email notification for inquiry %s: %v", inquiry.ID, err)
		return
	}
	log.Printf("Contact inquiry notification sent for %s", inquiry.ID)
}
