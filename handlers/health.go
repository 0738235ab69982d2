package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/utils/response"
)

// HealthHandler reports service gateway health
type HealthHandler struct {
	gateway *services.GatewayService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(gateway *services.GatewayService) *HealthHandler {
	return &HealthHandler{
		gateway: gateway,
	}
}

// Ping handles GET /ping
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// GetHealth handles GET /api/v1/health
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return response.Success(c, h.gateway.Health())
}
