// Package services определяет интерфейсы инфраструктурных сервисов.
package services

import (
	"context"

	"notekeep/internal/domain/entities"
	"notekeep/internal/domain/services"
)

// TokenService определяет операции выпуска и проверки токенов.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, user *entities.User) (*services.TokenPair, error)

	ValidateAccessToken(ctx context.Context, token string) (*services.TokenClaims, error)

	ValidateRefreshToken(ctx context.Context, token string) (*services.TokenClaims, error)
}
