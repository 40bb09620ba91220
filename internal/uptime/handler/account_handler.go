package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/QueasyListening/uptime-api/internal/uptime/dto"
	"github.com/QueasyListening/uptime-api/internal/uptime/service"
)

// AccountHandler serves the /users family.
type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	account, err := h.accounts.Register(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(account)
}

func (h *AccountHandler) Read(c *fiber.Ctx) error {
	account, err := h.accounts.Get(c.Context(), c.Query("phone"), bearerToken(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(account)
}

func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateAccountInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.accounts.Update(c.Context(), input, bearerToken(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{})
}

func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.accounts.Delete(c.Context(), c.Query("phone"), bearerToken(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{})
}
