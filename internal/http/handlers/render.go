package handlers

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alhaja/internal/validate"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Render(tmpl, data)
}

// fail maps a service error onto the JSON admin API: structured 400s for
// validation, 404 for unknown ids, 502 for gateway failures.
func fail(c *fiber.Ctx, err error) error {
	var errs validate.Errors
	if errors.As(err, &errs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation", "fields": errs})
	}
	if errors.Is(err, sql.ErrNoRows) || strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
}
