// Package dto содержит объекты передачи данных HTTP-слоя.
package dto

import (
	"time"

	"notekeep/internal/domain/entities"
	"notekeep/internal/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest содержит данные для обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest содержит данные для выхода пользователя.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse содержит выданную пару токенов.
type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// AuthResponse содержит профиль пользователя и пару токенов.
type AuthResponse struct {
	User   *UserResponse  `json:"user"`
	Tokens *TokenResponse `json:"tokens"`
}

// NewTokenResponse преобразует пару токенов в ответ.
func NewTokenResponse(pair *services.TokenPair) *TokenResponse {
	if pair == nil {
		return nil
	}
	return &TokenResponse{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}

// NewAuthResponse преобразует результат аутентификации в ответ.
func NewAuthResponse(user *entities.User, pair *services.TokenPair) *AuthResponse {
	return &AuthResponse{
		User:   NewUserResponse(user),
		Tokens: NewTokenResponse(pair),
	}
}
