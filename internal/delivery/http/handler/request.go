package handler

import (
	"strings"

	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/validate"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const MessageInvalidBody = "Invalid request body"

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, MessageInvalidBody, nil, err)
	}
	return nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, errs.Validation(validate.MessageInvalidInput, map[string]string{field: "is required"})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Validation(validate.MessageInvalidInput, map[string]string{field: "must be a valid id"})
	}
	return id, nil
}
