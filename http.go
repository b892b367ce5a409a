package concert

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// ErrorResponse is the JSON envelope every failed request gets.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message    string            `json:"message"`
	TextCode   string            `json:"text_code,omitempty"`
	Validation map[string]string `json:"validation,omitempty"`
}

// HTTPStatusFor maps a domain error to its HTTP status. Rich errors carry
// an explicit code; anything else falls back by category, and unknown
// failures surface as 500.
func HTTPStatusFor(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	if richErr.Code > 0 {
		return int(richErr.Code)
	}

	switch richErr.Category {
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RenderError writes the JSON error envelope for a failed request. Internal
// failures are masked so wrapped driver errors never leak to clients.
func RenderError(c *fiber.Ctx, err error) error {
	status := HTTPStatusFor(err)

	body := ErrorBody{Message: "Internal Server Error"}

	var richErr *errors.Error
	if errors.As(err, &richErr) && status < http.StatusInternalServerError {
		body.Message = richErr.Message
		body.TextCode = richErr.TextCode
		body.Validation = richErr.ValidationMap()
	}

	return c.Status(status).JSON(ErrorResponse{Error: body})
}

// NewErrorHandler builds the app-level fiber error handler: domain errors
// render through the shared envelope, fiber's own errors keep their status.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Error: ErrorBody{Message: fiberErr.Message},
			})
		}

		if HTTPStatusFor(err) >= http.StatusInternalServerError {
			logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}

		return RenderError(c, err)
	}
}
