// Package respond отображает доменные ошибки в HTTP ответы.
package respond

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeep/internal/domain/entities"
	domain "notekeep/internal/domain/services"
	"notekeep/pkg/logger"
)

// Тексты ответов.
const (
	MsgValidationFailed = "validation failed"
	MsgNotFound         = "not found"
	MsgUnauthorized     = "unauthorized"
	MsgConflict         = "conflict"
	MsgInternalError    = "Internal Server Error"
)

// validationFields сопоставляет ошибки валидации именам полей запроса.
var validationFields = []struct {
	err     error
	field   string
	message string
}{
	{entities.ErrEmptyUsername, "username", "username is required"},
	{entities.ErrUsernameTaken, "username", "username is already taken"},
	{entities.ErrEmptyPassword, "password", "password is required"},
	{entities.ErrPasswordTooShort, "password", fmt.Sprintf("password must be at least %d characters", entities.MinPasswordLength)},
	{entities.ErrEmptyTitle, "title", "title is required"},
	{entities.ErrEmptyDescription, "description", "description is required"},
}

// DomainError отправляет HTTP ответ, соответствующий доменной ошибке.
// Отсутствующая и чужая записи дают одинаковый ответ 404; детали
// непредвиденных ошибок остаются в логах.
func DomainError(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()

	for _, vf := range validationFields {
		if errors.Is(err, vf.err) {
			return send(ctx, fiber.StatusBadRequest, fiber.Map{
				"error":  MsgValidationFailed,
				"fields": fiber.Map{vf.field: vf.message},
			})
		}
	}

	switch {
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrNoteNotFound):
		return send(ctx, fiber.StatusNotFound, fiber.Map{
			"error": MsgNotFound,
		})

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		return send(ctx, fiber.StatusUnauthorized, fiber.Map{
			"error": MsgUnauthorized,
		})

	case errors.Is(err, entities.ErrNoteOwnerMissing):
		return send(ctx, fiber.StatusConflict, fiber.Map{
			"error": MsgConflict,
		})
	}

	logger.Log(requestCtx).Error(requestCtx, "unhandled domain error", zap.Error(err))
	return send(ctx, fiber.StatusInternalServerError, fiber.Map{
		"error": MsgInternalError,
	})
}

// NotFound отправляет ответ 404 с единым для всех ресурсов телом.
func NotFound(ctx fiber.Ctx) error {
	return send(ctx, fiber.StatusNotFound, fiber.Map{
		"error": MsgNotFound,
	})
}

// BadRequest отправляет ответ 400 с заданным сообщением.
func BadRequest(ctx fiber.Ctx, message string) error {
	return send(ctx, fiber.StatusBadRequest, fiber.Map{
		"error": message,
	})
}

// ValidationError отправляет ответ 400 с картой ошибок по полям.
func ValidationError(ctx fiber.Ctx, fields fiber.Map) error {
	return send(ctx, fiber.StatusBadRequest, fiber.Map{
		"error":  MsgValidationFailed,
		"fields": fields,
	})
}

func send(ctx fiber.Ctx, status int, body fiber.Map) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("sending error response: %w", err)
	}
	return nil
}
