package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/QueasyListening/uptime-api/internal/uptime/dto"
	"github.com/QueasyListening/uptime-api/internal/uptime/service"
)

// TokenHandler serves the /tokens family. Create is login.
type TokenHandler struct {
	tokens *service.TokenService
}

func NewTokenHandler(tokens *service.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

func (h *TokenHandler) Create(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	token, err := h.tokens.Login(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(token)
}

func (h *TokenHandler) Read(c *fiber.Ctx) error {
	token, err := h.tokens.Get(c.Context(), c.Query("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(token)
}

func (h *TokenHandler) Update(c *fiber.Ctx) error {
	var input dto.ExtendInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.tokens.Extend(c.Context(), input); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{})
}

func (h *TokenHandler) Delete(c *fiber.Ctx) error {
	if err := h.tokens.Revoke(c.Context(), c.Query("id")); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{})
}
