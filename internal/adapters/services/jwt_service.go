// Package services содержит реализации сервисов безопасности.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notekeep/internal/domain/entities"
	domain "notekeep/internal/domain/services"
	svc "notekeep/internal/ports/services"
	"notekeep/pkg/logger"
)

// Типы выпускаемых токенов.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Константы для работы с JWT.
const (
	methodGenerateTokenPair   = "GenerateTokenPair"
	methodValidateToken       = "validateToken"
	msgGeneratingTokenPair    = "generating token pair"
	msgTokenPairGenerated     = "token pair generated successfully"
	msgTokenExpired           = "token has expired"
	msgInvalidToken           = "invalid token"
	errCtxGeneratingToken     = "generating token"
	errCtxParsingToken        = "parsing token"
	errCtxUnexpectedTokenType = "unexpected token type"
)

// ErrInvalidAlgorithm - ошибка неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims адаптирует доменную модель к формату библиотеки JWT.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс services.TokenService.
type ServiceJWT struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		secretKey:       []byte(secretKey),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// jwtToDomainClaims преобразует claims библиотеки JWT в доменные claims.
func jwtToDomainClaims(claims *Claims) *domain.TokenClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &domain.TokenClaims{
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		IsAdmin:   claims.IsAdmin,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}

// GenerateTokenPair выпускает пару access/refresh токенов для пользователя.
func (s *ServiceJWT) GenerateTokenPair(ctx context.Context, user *entities.User) (*domain.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateTokenPair),
		zap.String("userID", user.ID),
	)
	log.Debug(ctx, msgGeneratingTokenPair)

	if len(s.secretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return nil, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, domain.ErrGeneratingToken)
	}

	accessToken, accessExpiresAt, err := s.sign(user, tokenTypeAccess, s.accessTokenTTL)
	if err != nil {
		log.Error(ctx, "error signing access token", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, domain.ErrGeneratingToken, err)
	}

	refreshToken, refreshExpiresAt, err := s.sign(user, tokenTypeRefresh, s.refreshTokenTTL)
	if err != nil {
		log.Error(ctx, "error signing refresh token", zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, domain.ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenPairGenerated, zap.Time("accessExpiresAt", accessExpiresAt))
	return &domain.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// sign подписывает токен указанного типа со свежим jti.
func (s *ServiceJWT) sign(user *entities.User, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing %s token: %w", tokenType, err)
	}

	return tokenString, expiresAt, nil
}

// ValidateAccessToken проверяет access токен и возвращает его claims.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	return s.validateToken(ctx, token, tokenTypeAccess)
}

// ValidateRefreshToken проверяет refresh токен и возвращает его claims.
func (s *ServiceJWT) ValidateRefreshToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	return s.validateToken(ctx, token, tokenTypeRefresh)
}

// validateToken разбирает и проверяет токен ожидаемого типа.
func (s *ServiceJWT) validateToken(ctx context.Context, tokenString, expectedType string) (*domain.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))

	parsedToken, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxParsingToken, domain.ErrTokenExpired)
		}
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, domain.ErrInvalidToken)
	}

	claims, ok := parsedToken.Claims.(*Claims)
	if !ok || !parsedToken.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, domain.ErrInvalidToken)
	}

	if claims.TokenType != expectedType {
		log.Debug(ctx, msgInvalidToken, zap.String("tokenType", claims.TokenType))
		return nil, fmt.Errorf("%s: %w", errCtxUnexpectedTokenType, domain.ErrInvalidToken)
	}

	return jwtToDomainClaims(claims), nil
}
