package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumebuilder/pkg/resume"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationResponse lists every rejected field of a form step.
type ValidationResponse struct {
	Message string                   `json:"message"`
	Errors  []resume.ValidationError `json:"errors"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func ValidationError(c *fiber.Ctx, errs resume.ValidationErrors) error {
	return JSON(c, http.StatusUnprocessableEntity, ValidationResponse{
		Message: errs.Error(),
		Errors:  errs,
	})
}

// ErrorHandler renders errors that escaped the handlers in the same
// {"message": ...} shape: unknown routes, *fiber.Error values and panics that
// the recover middleware turned into errors.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Error(c, fe.Code, fe.Message)
		}
		log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "err", err)
		return Error(c, http.StatusInternalServerError, "internal server error")
	}
}
