package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// CacheControl marks GET responses as cacheable by intermediaries for maxAge seconds.
// This is unrelated to the server-side list cache.
func CacheControl(maxAge int) fiber.Handler {
	value := fmt.Sprintf("public, max-age=%d", maxAge)
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			c.Set(fiber.HeaderCacheControl, value)
		}
		return c.Next()
	}
}

// NotFound answers every request that matched no route
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	}
}
