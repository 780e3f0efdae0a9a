package server

import (
	"go-inventory-shop/internal/cache"
	"go-inventory-shop/internal/config"
	"go-inventory-shop/internal/handler"
	"go-inventory-shop/internal/middleware"
	"go-inventory-shop/internal/model"
	"go-inventory-shop/internal/repository"
	"go-inventory-shop/internal/service"
	"go-inventory-shop/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the process-wide objects shared by every request
type Deps struct {
	ItemRepo  repository.ItemRepository
	ListCache *cache.Cache[[]model.Item]
	Hub       *ws.Hub
}

// New builds the Fiber app with middleware and every route registered
func New(cfg config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		UnescapePath: true,
		ErrorHandler: handler.ErrorHandler(cfg.IsDevelopment()),
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(middleware.CacheControl(cfg.CacheMaxAge))

	var publisher service.EventPublisher
	if deps.Hub != nil {
		publisher = deps.Hub
	}

	invService := service.NewInventoryService(deps.ItemRepo, deps.ListCache, publisher)
	dashService := service.NewDashboardService(deps.ItemRepo)

	RegisterRoutes(app,
		handler.NewInventoryHandler(invService, cfg.IsDevelopment()),
		handler.NewDashboardHandler(dashService, cfg.IsDevelopment()),
	)

	if deps.Hub != nil {
		registerWebSocket(app, deps.Hub)
	}

	// Front-end assets; GET / resolves to index.html, misses fall through to NotFound
	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	app.Use(middleware.NotFound())
	return app
}

func RegisterRoutes(app *fiber.App, invHandler *handler.InventoryHandler, dashHandler *handler.DashboardHandler) {
	api := app.Group("/api/inventory")

	api.Get("/", invHandler.GetItems)
	api.Get("/stats", dashHandler.GetInventoryStats)
	api.Get("/:id", invHandler.GetItem)
	api.Post("/", invHandler.CreateItem)
	api.Put("/:id", invHandler.UpdateItem)
	api.Delete("/:id", invHandler.DeleteItem)
}

func registerWebSocket(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		for {
			// Clients only listen; reading detects the disconnect
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
