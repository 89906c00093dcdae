// Package services определяет доменные типы и ошибки сервисов безопасности.
package services

import (
	"errors"
	"time"
)

// Ошибки работы с токенами.
var (
	ErrGeneratingToken = errors.New("error generating token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenRevoked    = errors.New("token has been revoked")
)

// Ошибки работы с паролями и учетными данными. ErrInvalidCredentials
// одинакова для неизвестного username и неверного пароля.
var (
	ErrHashingFailed      = errors.New("failed to hash password")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// TokenClaims - доменное представление содержимого токена.
type TokenClaims struct {
	TokenID   string
	UserID    string
	Username  string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair - пара access/refresh токенов, выдаваемая при аутентификации.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}
