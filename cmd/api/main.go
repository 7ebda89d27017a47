package main

// @title Traveller Backend API
// @version 1.0.0
// @description Поиск мест вокруг точки с временем и расстоянием в пути.
// @description Места ищутся через Google Places, время в пути считается батчами по 25 мест через Distance Matrix API (Google или Mapbox).

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/traveller-backend/docs"
	"github.com/traveller-backend/internal/bootstrap"
	"github.com/traveller-backend/internal/config"
	httpDelivery "github.com/traveller-backend/internal/delivery/http"
	"github.com/traveller-backend/internal/delivery/http/handler"
	"github.com/traveller-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(logger.Options{Name: "api", Level: cfg.Log.Level})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Traveller Backend")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("distance_provider", cfg.Distance.Provider),
	)

	// 3. Providers, throttler, use case
	services, err := bootstrap.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize services", zap.Error(err))
	}

	// 4. Initialize HTTP Handlers
	placesHandler := handler.NewPlacesHandler(services.Places, cfg.Search, log)
	healthHandler := handler.NewHealthHandler(services.Distance, services.Provider)

	// 5. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, placesHandler, healthHandler)

	// 6. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// throttler останавливаем после сервера, чтобы дождаться запросов в полёте
	services.Close()

	log.Info("Server stopped successfully")
}
