// Package handler exposes the service layer as a JSON API over Fiber.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/yuetlam/splitter/internal/auth"
	"github.com/yuetlam/splitter/internal/service"
)

// fail maps service errors onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
