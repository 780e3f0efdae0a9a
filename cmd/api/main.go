package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-shop/internal/cache"
	"go-inventory-shop/internal/config"
	"go-inventory-shop/internal/model"
	"go-inventory-shop/internal/repository"
	"go-inventory-shop/internal/server"
	"go-inventory-shop/internal/ws"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// 2. Seed the in-memory store
	itemRepo := repository.NewItemRepo(repository.SampleItems(time.Now().UTC()))

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Setup Fiber
	app := server.New(cfg, server.Deps{
		ItemRepo:  itemRepo,
		ListCache: cache.New[[]model.Item](cfg.CacheTTL),
		Hub:       wsHub,
	})

	// 5. Graceful Shutdown
	go func() {
		log.Printf("%s server running on port %s", cfg.AppName, cfg.Port)
		log.Printf("Frontend: http://localhost:%s", cfg.Port)
		log.Printf("API: http://localhost:%s/api/inventory", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	wsHub.Stop()

	log.Println("Server exited")
}
