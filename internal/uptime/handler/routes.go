package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the resource families. Each family answers all four
// CRUD methods through dispatch; /ping answers GET only; any other path is a
// 404 with an empty JSON body.
func RegisterRoutes(app *fiber.App, accounts *AccountHandler, tokens *TokenHandler, checks *CheckHandler) {
	app.All("/users", dispatch(accounts))
	app.All("/tokens", dispatch(tokens))
	app.All("/checks", dispatch(checks))
	app.All("/ping", Ping)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{})
	})
}

// Ping is the liveness probe.
func Ping(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{})
}
