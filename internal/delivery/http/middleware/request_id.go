package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestid"

	// FailedBatchesHeader - число батчей distance matrix, завершившихся ошибкой
	FailedBatchesHeader = "X-Failed-Batches"
)

// RequestID проставляет X-Request-ID (uuid), если клиент его не прислал
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	})
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}
