package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alumni-labs/bolsa/api/http/presenter"
	"github.com/alumni-labs/bolsa/pkg/health"
)

type HealthHandler struct {
	readiness health.ReadinessUseCase
}

func NewHealthHandler(readiness health.ReadinessUseCase) *HealthHandler {
	return &HealthHandler{readiness: readiness}
}

// Live reports process liveness.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "ok"})
}

// Ready reports readiness of backing services.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.readiness.Ready(c.Context()); err != nil {
		return presenter.Error(c, http.StatusServiceUnavailable, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "ready"})
}
