package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// DispatchStats - состояние общего throttler'а distance matrix
type DispatchStats interface {
	InFlight() int
	Waiting() int
}

type HealthHandler struct {
	stats    DispatchStats
	provider string
}

func NewHealthHandler(stats DispatchStats, provider string) *HealthHandler {
	return &HealthHandler{stats: stats, provider: provider}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status":            "healthy",
		"time":              time.Now(),
		"distance_provider": h.provider,
	}
	if h.stats != nil {
		resp["distance_in_flight"] = h.stats.InFlight()
		resp["distance_waiting"] = h.stats.Waiting()
	}
	return c.JSON(resp)
}
