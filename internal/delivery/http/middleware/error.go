package middleware

import (
	"errors"

	"devjobs/internal/pkg/response"
	"devjobs/internal/pkg/validate"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	lg zerolog.Logger
}

func NewErrorMiddleware(lg zerolog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{lg: lg.With().Str("component", "http_error").Logger()}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.lg.Error().Interface("panic", r).Str("path", c.OriginalURL()).Msg("panic recovered")
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.lg.Error().Err(err).Str("method", c.Method()).Str("path", c.OriginalURL()).Msg("request failed")
		}
		return response.Error(c, status, msg, data)
	}
}

// Handle is the fiber ErrorHandler counterpart of Middleware, for errors the
// server raises before the handler chain runs, like a body over the limit.
func (m *ErrorMiddleware) Handle(c fiber.Ctx, err error) error {
	status, msg, data := normalizeError(err)
	if status >= 500 {
		m.lg.Error().Err(err).Str("method", c.Method()).Str("path", c.OriginalURL()).Msg("request failed")
	}
	return response.Error(c, status, msg, data)
}

func normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var vErr *validate.Error
	if errors.As(err, &vErr) {
		return fiber.StatusUnprocessableEntity, response.MessageUnprocessableEntity, vErr.Fields
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		msg := appErr.Message
		if msg == "" {
			msg = response.MessageError
		}
		return status, msg, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status == fiber.StatusRequestEntityTooLarge {
			// The server body limit trips before the upload middleware sees
			// the file, so the oversize message is applied here too.
			return status, msgFileTooLarge, nil
		}
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, fiberErr.Message, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
