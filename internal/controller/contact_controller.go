package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"propertymasters_backend/pkg/store"
	"propertymasters_backend/pkg/utils/validation"
)

// SubmitContactForm is the external form-builder endpoint. It answers with
// an {ok, ...} envelope instead of the usual error shape and requires no
// consent flag.
func SubmitContactForm(st store.Store, notifier Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		obj, err := readObject(c)
		if err != nil {
			return missingFields(c)
		}

		input, err := validation.ParseContactForm(obj)
		if err != nil {
			return missingFields(c)
		}

		inquiry, err := st.CreateInquiry(c.UserContext(), input)
		if err != nil {
			log.Printf("Error processing contact form: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":    false,
				"error": "Failed to submit contact inquiry",
			})
		}

		notifyOperator(c, notifier, inquiry)

		return c.JSON(fiber.Map{
			"ok":      true,
			"message": "Contact inquiry submitted successfully",
			"id":      inquiry.ID,
		})
	}
}

func missingFields(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"ok":    false,
		"error": "Missing required fields: name, email, and message are required",
	})
}
