package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"propertymasters_backend/pkg/store"
	"propertymasters_backend/pkg/utils/validation"
)

func inquiryNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Contact inquiry not found",
	})
}

// CreateContactInquiry validates the full form, consent included, stores
// the inquiry and then notifies the operator.
func CreateContactInquiry(st store.Store, notifier Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		obj, err := readObject(c)
		if err != nil {
			return badRequest(c, err)
		}

		input, err := validation.ParseInquiry(obj)
		if err != nil {
			return badRequest(c, err)
		}

		inquiry, err := st.CreateInquiry(c.UserContext(), input)
		if err != nil {
			return serverError(c, "Failed to submit contact inquiry", err)
		}

		notifyOperator(c, notifier, inquiry)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Contact inquiry submitted successfully",
			"id":      inquiry.ID,
		})
	}
}

func GetContactInquiries(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inquiries, err := st.ListInquiries(c.UserContext())
		if err != nil {
			return serverError(c, "Failed to fetch contact inquiries", err)
		}
		return c.JSON(inquiries)
	}
}

func GetContactInquiry(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inquiry, err := st.GetInquiry(c.UserContext(), c.Params("id"))
		if errors.Is(err, store.ErrNotFound) {
			return inquiryNotFound(c)
		}
		if err != nil {
			return serverError(c, "Failed to fetch contact inquiry", err)
		}
		return c.JSON(inquiry)
	}
}

func UpdateContactInquiryStatus(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		obj, err := readObject(c)
		if err != nil {
			return badRequest(c, err)
		}

		status, err := validation.ParseStatus(obj)
		if err != nil {
			return badRequest(c, err)
		}

		inquiry, err := st.UpdateInquiryStatus(c.UserContext(), c.Params("id"), status)
		if errors.Is(err, store.ErrNotFound) {
			return inquiryNotFound(c)
		}
		if err != nil {
			return serverError(c, "Failed to update contact inquiry status", err)
		}
		return c.JSON(inquiry)
	}
}
