package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumebuilder/api/http/presenter"
	"github.com/artem13815/resumebuilder/pkg/health"
)

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct{ svc health.ReadinessUseCase }

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler { return &HealthHandler{svc: svc} }

// Health: процесс жив.
// @Summary Liveness check
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

// Ready: проверка зависимостей (postgres, redis), если они настроены.
// @Summary Readiness check
// @Tags    health
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} health.Report
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	rep := h.svc.Ready(c.Context())
	status := fiber.StatusOK
	if !rep.Ready {
		status = fiber.StatusServiceUnavailable
	}
	return presenter.JSON(c, status, rep)
}
