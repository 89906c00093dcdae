package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	domain "notekeep/internal/domain/services"
	"notekeep/internal/ports/services"
	"notekeep/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
	ErrorTokenRevoked       = "token has been revoked"
	ErrorAdminRequired      = "admin privileges required"

	// LocalsAuthClaims хранит проверенные утверждения access токена.
	LocalsAuthClaims = "authClaims"

	bearerPrefix = "Bearer "
)

// NewAuthMiddleware создает промежуточное ПО проверки аутентификации.
// Личность вызывающего определяется только предъявленным access токеном
// и складывается в Locals для обработчиков ниже по цепочке.
func NewAuthMiddleware(tokenService services.TokenService, denylist services.TokenDenylist) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorNoAuthHeader,
			})
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidTokenFormat,
			})
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := tokenService.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidToken,
			})
		}

		revoked, err := denylist.IsRevoked(requestCtx, claims.TokenID)
		if err != nil {
			log.Error(requestCtx, "checking token denylist", zap.Error(err))
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		}
		if revoked {
			log.Debug(requestCtx, ErrorTokenRevoked)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorTokenRevoked,
			})
		}

		ctx.Locals(LocalsAuthClaims, claims)

		return ctx.Next()
	}
}

// NewAdminMiddleware создает промежуточное ПО проверки административных
// прав. Должно стоять после NewAuthMiddleware.
func NewAdminMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)

		claims, ok := AuthClaims(ctx)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorNoAuthHeader,
			})
		}

		if !claims.IsAdmin {
			logger.Log(requestCtx).Debug(requestCtx, ErrorAdminRequired,
				zap.String("userID", claims.UserID))
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": ErrorAdminRequired,
			})
		}

		return ctx.Next()
	}
}

// AuthClaims возвращает утверждения токена, сохраненные NewAuthMiddleware.
func AuthClaims(ctx fiber.Ctx) (*domain.TokenClaims, bool) {
	claims, ok := ctx.Locals(LocalsAuthClaims).(*domain.TokenClaims)
	return claims, ok
}
