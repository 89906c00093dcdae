// Package api определяет интерфейсы бизнес-логики приложения.
package api

import (
	"context"

	"notekeep/internal/domain/entities"
	"notekeep/internal/domain/services"
)

// AuthResult - результат регистрации или входа: пользователь и его токены.
type AuthResult struct {
	User   *entities.User
	Tokens *services.TokenPair
}

// AuthUseCase определяет операции аутентификации.
type AuthUseCase interface {
	// Register создает нового пользователя без административных прав.
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)

	// Login проверяет учетные данные. Неизвестный username и неверный
	// пароль дают одинаковую ошибку.
	Login(ctx context.Context, username, password string) (*AuthResult, error)

	// Refresh выдает новую пару токенов по действующему refresh токену
	// и отзывает использованный.
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	// Logout отзывает предъявленные токены до истечения их срока жизни.
	Logout(ctx context.Context, accessToken, refreshToken string) error

	// GetProfile возвращает учетную запись вызывающего.
	GetProfile(ctx context.Context, userID string) (*entities.User, error)
}
