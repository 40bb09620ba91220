package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/QueasyListening/uptime-api/internal/uptime/dto"
	"github.com/QueasyListening/uptime-api/internal/uptime/service"
)

// CheckHandler serves the /checks family. Ownership is always resolved from
// the token, so no phone ever appears in these requests.
type CheckHandler struct {
	checks *service.CheckService
}

func NewCheckHandler(checks *service.CheckService) *CheckHandler {
	return &CheckHandler{checks: checks}
}

func (h *CheckHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateCheckInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	check, err := h.checks.Create(c.Context(), input, bearerToken(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(check)
}

func (h *CheckHandler) Read(c *fiber.Ctx) error {
	check, err := h.checks.Get(c.Context(), c.Query("id"), bearerToken(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(check)
}

func (h *CheckHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateCheckInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.checks.Update(c.Context(), input, bearerToken(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{})
}

func (h *CheckHandler) Delete(c *fiber.Ctx) error {
	if err := h.checks.Delete(c.Context(), c.Query("id"), bearerToken(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{})
}
