package handler

import (
	"log"

	"go-inventory-shop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
	devMode bool
}

func NewDashboardHandler(s service.DashboardService, devMode bool) *DashboardHandler {
	return &DashboardHandler{service: s, devMode: devMode}
}

// GetInventoryStats returns totals, low stock items and the per-category breakdown
func (h *DashboardHandler) GetInventoryStats(c *fiber.Ctx) error {
	stats, err := h.service.GetInventoryStats()
	if err != nil {
		log.Printf("Failed to retrieve inventory statistics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve inventory statistics",
			"error":   errorDetail(err, h.devMode),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}
