package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var valid = validator.New(validator.WithRequiredStructEnabled())

// bind parses the JSON body into dst and runs struct validation.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return err
	}
	return valid.Struct(dst)
}

func jsonErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return jsonErr(c, fiber.StatusNotFound, msg)
}
