package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"propertymasters_backend/internal/model"
	"propertymasters_backend/pkg/store"
	"propertymasters_backend/pkg/utils/validation"
)

func propertyNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Property not found",
	})
}

// GetProperties lists every property ordered by name
func GetProperties(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		properties, err := st.ListProperties(c.UserContext())
		if err != nil {
			return serverError(c, "Failed to fetch properties", err)
		}
		return c.JSON(properties)
	}
}

func GetProperty(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		property, err := st.GetProperty(c.UserContext(), c.Params("id"))
		if errors.Is(err, store.ErrNotFound) {
			return propertyNotFound(c)
		}
		if err != nil {
			return serverError(c, "Failed to fetch property", err)
		}
		return c.JSON(property)
	}
}

func GetPropertyBySlug(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		property, err := st.GetPropertyBySlug(c.UserContext(), c.Params("slug"))
		if errors.Is(err, store.ErrNotFound) {
			return propertyNotFound(c)
		}
		if err != nil {
			return serverError(c, "Failed to fetch property", err)
		}
		return c.JSON(property)
	}
}

func CreateProperty(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		obj, err := readObject(c)
		if err != nil {
			return badRequest(c, err)
		}

		input, err := validation.ParsePropertyCreate(obj)
		if err != nil {
			return badRequest(c, err)
		}

		property, err := st.CreateProperty(c.UserContext(), input)
		if err != nil {
			return serverError(c, "Failed to create property", err)
		}
		return c.Status(fiber.StatusCreated).JSON(property)
	}
}

// UpdateProperty applies a partial update. Only fields present in the body
// change; an empty body just refreshes updatedAt.
func UpdateProperty(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		obj, err := readObject(c)
		if err != nil {
			return badRequest(c, err)
		}

		update, err := validation.ParsePropertyUpdate(obj)
		if err != nil {
			return badRequest(c, err)
		}

		property, err := st.UpdateProperty(c.UserContext(), c.Params("id"), update)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return propertyNotFound(c)
		case errors.Is(err, model.ErrOccupancyExceedsTotal):
			return badRequest(c, validation.OccupancyError())
		case err != nil:
			return serverError(c, "Failed to update property", err)
		}
		return c.JSON(property)
	}
}

func DeleteProperty(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := st.DeleteProperty(c.UserContext(), c.Params("id"))
		if err != nil {
			return serverError(c, "Failed to delete property", err)
		}
		if !deleted {
			return propertyNotFound(c)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
