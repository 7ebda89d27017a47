package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// Включается только в dev/test окружении (Expo dev server, web preview).
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:8081,http://localhost:19006",
		AllowMethods:     "GET,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language",
		ExposeHeaders:    FailedBatchesHeader + "," + RequestIDHeader,
		AllowCredentials: true,
	})
}
