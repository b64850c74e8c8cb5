package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"surveyflow/internal/http/middleware"
	"surveyflow/internal/service"
	"surveyflow/internal/workflow"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_XML", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// respondError translates a service error into the error envelope.
func respondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorPayload{
			RequestID: requestIDFromCtx(c),
			Error: errorEnvelope{
				Code:       "VALIDATION_FAILED",
				Message:    "validation failed",
				Violations: verr.Violations,
			},
		})
	}

	var terr *workflow.TransitionError
	switch {
	case errors.Is(err, service.ErrInvalidXML):
		return writeError(c, fiber.StatusBadRequest, "INVALID_XML", "survey xml is malformed")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "id is required")
	case errors.Is(err, service.ErrCommentRequired):
		return writeError(c, fiber.StatusBadRequest, "COMMENT_REQUIRED", "comment is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, workflow.ErrStepNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "workflow step not found")
	case errors.Is(err, service.ErrAlreadyExists):
		return writeError(c, fiber.StatusConflict, "CONFLICT", "resource already exists")
	case errors.As(err, &terr):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", terr.Error())
	case errors.Is(err, workflow.ErrInvalidTransition):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", "invalid workflow transition")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var e *fiber.Error
		if !errors.As(err, &e) {
			return respondError(c, err)
		}

		switch e.Code {
		case fiber.StatusBadRequest:
			return writeError(c, e.Code, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, e.Code, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, e.Code, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, e.Code, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusUnsupportedMediaType, fiber.StatusUnprocessableEntity:
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		default:
			return writeError(c, e.Code, "INTERNAL_ERROR", "internal server error")
		}
	}
}
