package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"articlegen-be/internal/pkg/logger"
	"articlegen-be/pkg/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func httpStatusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case apperror.CodeForbidden:
		return fiber.StatusForbidden
	case apperror.CodeNotFound:
		return fiber.StatusNotFound
	case apperror.CodeUnsupportedMediaType:
		return fiber.StatusUnsupportedMediaType
	case apperror.CodeValidationFailed:
		return fiber.StatusBadRequest
	case apperror.CodeConflict:
		return fiber.StatusConflict
	case apperror.CodeUpstreamFailure:
		return fiber.StatusBadGateway
	case apperror.CodeStepBudgetExhausted:
		// The run produced partial output; the client can retry or accept it.
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware is the Fiber app-level error handler. It translates
// the error taxonomy into HTTP statuses and keeps internal causes out of
// response bodies.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(Response{
				Success: false,
				Message: fiberErr.Message,
			})
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := httpStatusFor(appErr.Code)
			if status >= fiber.StatusInternalServerError {
				log.Error("http", "request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"error": err.Error(),
				})
			}
			return ctx.Status(status).JSON(Response{
				Success: false,
				Message: appErr.Message,
				Code:    string(appErr.Code),
			})
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(Response{
				Success: false,
				Message: "resource not found",
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(Response{
			Success: false,
			Message: "internal server error",
		})
	}
}
