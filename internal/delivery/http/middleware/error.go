package middleware

import (
	"errors"
	"fmt"

	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/logger"
	"campus-jobs/internal/pkg/response"

	goerrors "github.com/go-errors/errors"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// AppError carries an HTTP status chosen by a handler, for failures that
// happen before a use case runs (malformed bodies, bad path params).
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
	log *zap.Logger
}

func NewErrorMiddleware(log *zap.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{log: logger.OrNop(log)}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("panic recovered",
					zap.String("request_id", RequestID(c)),
					zap.String("path", c.Path()),
					zap.Any("panic", r),
					zap.ByteString("stack", goerrors.Wrap(fmt.Errorf("%v", r), 2).Stack()),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			fields := []zap.Field{
				zap.String("request_id", RequestID(c)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			}
			var de *errs.DomainError
			if errors.As(err, &de) && len(de.Stack) > 0 {
				fields = append(fields, zap.ByteString("stack", de.Stack))
			}
			m.log.Error("request failed", fields...)
		}
		return response.Error(c, status, msg, data)
	}
}

// StatusFor maps a domain error type to its HTTP status. Authorization
// failures share 401 with authentication so callers learn nothing about the
// resource.
func StatusFor(t errs.Type) int {
	switch t {
	case errs.TypeValidation, errs.TypeConflict:
		return fiber.StatusBadRequest
	case errs.TypeAuthentication, errs.TypeAuthorization:
		return fiber.StatusUnauthorized
	case errs.TypeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var domainErr *errs.DomainError
	if errors.As(err, &domainErr) {
		status := StatusFor(domainErr.Type)
		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := domainErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		if len(domainErr.Fields) > 0 {
			return status, msg, domainErr.Fields
		}
		return status, msg, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		status := appErr.StatusCode
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}

		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, msg, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
