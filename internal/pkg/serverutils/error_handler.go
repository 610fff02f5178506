package serverutils

import (
	"errors"

	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func statusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindAuthRequired:
		return fiber.StatusUnauthorized
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware renders every error returned further down the chain
// as a BaseResponse. Internal errors are logged and replaced with a generic
// message.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := fiberErr.Code
		switch {
		case code == fiber.StatusNotFound, code == fiber.StatusMethodNotAllowed, code == fiber.StatusRequestEntityTooLarge:
		case code >= 400 && code < 500:
			code = fiber.StatusBadRequest
		default:
			code = fiber.StatusInternalServerError
		}
		if code == fiber.StatusInternalServerError {
			log.Error("HTTP", "Unhandled fiber error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err,
			})
			return ctx.Status(code).JSON(ErrorResponse(code, "internal server error"))
		}
		return ctx.Status(code).JSON(ErrorResponse(code, fiberErr.Message))
	}

	appErr := apperror.As(err)
	code := statusOf(appErr.Kind)
	if appErr.Kind == apperror.KindInternal {
		log.Error("HTTP", appErr.Message, map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err,
		})
		return ctx.Status(code).JSON(ErrorResponse(code, "internal server error"))
	}

	res := ErrorResponse(code, appErr.Message)
	res.Errors = appErr.Fields
	if appErr.Code != "" && appErr.Code != string(appErr.Kind) {
		res.Data = fiber.Map{"error_code": appErr.Code}
	}
	return ctx.Status(code).JSON(res)
}
