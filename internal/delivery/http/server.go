package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/delivery/http/handler"
	"github.com/traveller-backend/internal/delivery/http/middleware"
	"github.com/traveller-backend/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	placesHandler *handler.PlacesHandler
	healthHandler *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	placesHandler *handler.PlacesHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	// поиск на 200 мест это 8 батчей с интервалом в 1с, плюс пагинация Places API
	app := fiber.New(fiber.Config{
		AppName:      "Traveller Backend",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		placesHandler: placesHandler,
		healthHandler: healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App returns the underlying fiber app (used by tests).
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger, s.config.Server.Env))
	if s.config.IsDevelopment() {
		s.app.Use(middleware.CORS())
	}
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Маршруты мобильного приложения. details раньше :keyword
	places := s.app.Group("/places")
	places.Get("/details/:placeId", s.placesHandler.Details)
	places.Get("/:keyword", s.placesHandler.Search)

	api := s.app.Group("/api/v1")
	api.Get("/health", s.healthHandler.Health)
	api.Get("/places/search/:keyword", s.placesHandler.SearchV1)
	api.Get("/places/details/:placeId", s.placesHandler.DetailsV1)

	s.app.Use(func(c *fiber.Ctx) error {
		return utils.SendLegacyError(c, fiber.StatusNotFound, "endpoint not found")
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if stderrors.As(err, &e) {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)

		if code == fiber.StatusNotFound {
			return utils.SendLegacyError(c, code, "endpoint not found")
		}
		return utils.SendLegacyError(c, code, handler.LegacyServerError)
	}
}
