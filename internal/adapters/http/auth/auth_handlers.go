// Package auth содержит HTTP обработчики аутентификации.
package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeep/internal/adapters/http/middleware"
	"notekeep/internal/adapters/http/respond"
	"notekeep/internal/app/dto"
	"notekeep/internal/ports/api"
	"notekeep/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerRefresh    = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout     = "auth handler: logout"
	LogHandlerGetProfile = "auth handler: get profile"

	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler содержит HTTP обработчики для аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
// Административные права при регистрации не назначаются.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	result, err := h.authUseCase.Register(requestCtx, req.Username, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, "failed to register user", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewAuthResponse(result.User, result.Tokens)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя. Неизвестный username и
// неверный пароль дают один и тот же ответ.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if req.Username == "" || req.Password == "" {
		return respond.BadRequest(ctx, "username and password are required")
	}

	result, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		log.Error(requestCtx, "failed to log in", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewAuthResponse(result.User, result.Tokens)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Refresh обрабатывает запрос на обновление токенов. Использованный
// refresh токен отзывается.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefresh)

	var req dto.RefreshRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if req.RefreshToken == "" {
		return respond.BadRequest(ctx, "refresh token is required")
	}

	pair, err := h.authUseCase.Refresh(requestCtx, req.RefreshToken)
	if err != nil {
		log.Error(requestCtx, "failed to refresh tokens", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewTokenResponse(pair)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос на выход пользователя. Отзываются и access
// токен из заголовка, и refresh токен из тела; недействительные токены
// игнорируются.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	var req dto.LogoutRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	accessToken := strings.TrimPrefix(ctx.Get("Authorization"), "Bearer ")
	if accessToken == "" && req.RefreshToken == "" {
		return respond.BadRequest(ctx, "no token to revoke")
	}

	if err := h.authUseCase.Logout(requestCtx, accessToken, req.RefreshToken); err != nil {
		log.Error(requestCtx, "failed to log out", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "logged out successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает запрос на получение профиля вызывающего.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	claims, ok := middleware.AuthClaims(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": respond.MsgUnauthorized,
		})
	}

	user, err := h.authUseCase.GetProfile(requestCtx, claims.UserID)
	if err != nil {
		log.Error(requestCtx, "failed to get profile", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
