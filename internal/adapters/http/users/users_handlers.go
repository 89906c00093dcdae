// Package users содержит HTTP обработчики справочника пользователей.
// Все маршруты этого пакета доступны только администраторам.
package users

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notekeep/internal/adapters/http/middleware"
	"notekeep/internal/adapters/http/respond"
	"notekeep/internal/app/dto"
	"notekeep/internal/ports/api"
	"notekeep/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListUsers  = "users handler: list"
	LogHandlerCreateUser = "users handler: create"
	LogHandlerGetUser    = "users handler: get"
	LogHandlerUpdateUser = "users handler: update"
	LogHandlerDeleteUser = "users handler: delete"

	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler содержит HTTP обработчики справочника пользователей.
type Handler struct {
	userUseCase api.UserDirectoryUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(userUseCase api.UserDirectoryUseCase) *Handler {
	return &Handler{
		userUseCase: userUseCase,
	}
}

// List обрабатывает запрос на получение списка пользователей.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerListUsers)

	users, err := h.userUseCase.List(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to list users", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewListUsersResponse(users)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create обрабатывает запрос на создание пользователя администратором.
// В отличие от регистрации здесь можно назначать is_admin.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateUser)

	var req dto.CreateUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	user, err := h.userUseCase.Create(requestCtx, api.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		log.Error(requestCtx, "failed to create user", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Get обрабатывает запрос на получение пользователя по ID.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetUser)

	userID, err := pathUserID(ctx)
	if err != nil {
		return respond.NotFound(ctx)
	}

	user, err := h.userUseCase.Get(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, "failed to get user", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Replace обрабатывает PUT: полное замещение учетной записи.
func (h *Handler) Replace(ctx fiber.Ctx) error {
	return h.update(ctx, true)
}

// Update обрабатывает PATCH: частичное изменение учетной записи.
func (h *Handler) Update(ctx fiber.Ctx) error {
	return h.update(ctx, false)
}

func (h *Handler) update(ctx fiber.Ctx, fullReplace bool) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateUser, zap.Bool("fullReplace", fullReplace))

	userID, err := pathUserID(ctx)
	if err != nil {
		return respond.NotFound(ctx)
	}

	var req dto.UpdateUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	user, err := h.userUseCase.Update(requestCtx, userID, api.UpdateUserParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		IsAdmin:     req.IsAdmin,
		FullReplace: fullReplace,
	})
	if err != nil {
		log.Error(requestCtx, "failed to update user", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Delete обрабатывает запрос на удаление пользователя вместе с его
// заметками.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteUser)

	userID, err := pathUserID(ctx)
	if err != nil {
		return respond.NotFound(ctx)
	}

	if err := h.userUseCase.Delete(requestCtx, userID); err != nil {
		log.Error(requestCtx, "failed to delete user", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// pathUserID извлекает идентификатор пользователя из пути. Синтаксически
// неверный идентификатор неотличим для клиента от отсутствующей записи.
func pathUserID(ctx fiber.Ctx) (string, error) {
	userID := ctx.Params("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("parsing user id: %w", err)
	}
	return userID, nil
}
