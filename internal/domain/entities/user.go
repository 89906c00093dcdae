// Package entities определяет доменные сущности хранилища заметок.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must contain at least 8 characters")
	ErrInvalidPassword  = errors.New("invalid password")
)

// MinPasswordLength - минимальная длина пароля.
const MinPasswordLength = 8

// User представляет учетную запись пользователя. PasswordHash никогда
// не попадает в исходящие представления.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
