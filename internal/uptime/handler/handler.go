package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	apierrors "github.com/QueasyListening/uptime-api/internal/errors"
)

// resource is the capability set every family of endpoints implements.
// dispatch matches the HTTP method onto it; anything else is a 405.
type resource interface {
	Create(c *fiber.Ctx) error
	Read(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func dispatch(r resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost:
			return r.Create(c)
		case fiber.MethodGet:
			return r.Read(c)
		case fiber.MethodPut:
			return r.Update(c)
		case fiber.MethodDelete:
			return r.Delete(c)
		default:
			return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{})
		}
	}
}

// respondError maps a service error onto the uniform (status, payload)
// shape. Authorization failures never reveal whether the resource exists.
func respondError(c *fiber.Ctx, err error) error {
	var cascade *apierrors.CascadeError
	switch {
	case errors.As(err, &cascade):
		slog.Error("cascade delete incomplete", "deleted", cascade.Deleted, "failed", cascade.Failed)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   cascade.Error(),
			"deleted": cascade.Deleted,
			"failed":  cascade.Failed,
		})
	case errors.Is(err, apierrors.ErrValidation),
		errors.Is(err, apierrors.ErrAccountExists),
		errors.Is(err, apierrors.ErrInvalidCredentials),
		errors.Is(err, apierrors.ErrTokenExpired),
		errors.Is(err, apierrors.ErrQuotaExceeded):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apierrors.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apierrors.ErrAccountNotFound),
		errors.Is(err, apierrors.ErrTokenNotFound),
		errors.Is(err, apierrors.ErrCheckNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

// bearerToken extracts the bare token header used on authorized calls.
func bearerToken(c *fiber.Ctx) string {
	return c.Get("token")
}
