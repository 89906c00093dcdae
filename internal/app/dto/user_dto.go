package dto

import (
	"time"

	"notekeep/internal/domain/entities"
)

// CreateUserRequest содержит данные для создания пользователя
// администратором.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserRequest содержит данные для изменения пользователя.
// Указатели различают отсутствующее поле и пустое значение.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
}

// UserResponse содержит публичное представление пользователя.
// Пароль и его хеш никогда не сериализуются.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserOwnerResponse содержит публичные поля владельца заметки.
type UserOwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ListUsersResponse содержит список пользователей.
type ListUsersResponse struct {
	Users []*UserResponse `json:"users"`
}

// NewUserResponse преобразует сущность пользователя в ответ.
func NewUserResponse(user *entities.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserOwnerResponse преобразует сущность пользователя во вложенное
// представление владельца.
func NewUserOwnerResponse(user *entities.User) *UserOwnerResponse {
	if user == nil {
		return nil
	}
	return &UserOwnerResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// NewListUsersResponse преобразует список сущностей в ответ.
func NewListUsersResponse(users []*entities.User) *ListUsersResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return &ListUsersResponse{Users: out}
}
