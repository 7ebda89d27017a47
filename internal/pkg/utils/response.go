package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/traveller-backend/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// LegacyErrorResponse - формат ошибок, который ожидает мобильное приложение
type LegacyErrorResponse struct {
	Error string `json:"error"`
}

type Meta struct {
	Total      int         `json:"total"`
	TimeMSec   float64     `json:"time_ms,omitempty"`
	Candidates int         `json:"candidates,omitempty"`
	Batches    interface{} `json:"batches,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}

func SendLegacyError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(LegacyErrorResponse{Error: message})
}
