package api

import (
	"context"

	"notekeep/internal/domain/entities"
)

// CreateUserParams - поля создания учетной записи администратором.
type CreateUserParams struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// UpdateUserParams - поля изменения учетной записи. nil означает
// "не передано". При FullReplace не переданный email очищается,
// не переданный is_admin сбрасывается в false, не переданный пароль
// остается прежним (учетные данные нельзя "очистить" в пустые),
// а отсутствие username является ошибкой валидации.
type UpdateUserParams struct {
	Username    *string
	Email       *string
	Password    *string
	IsAdmin     *bool
	FullReplace bool
}

// UserDirectoryUseCase определяет административные операции над
// справочником пользователей.
type UserDirectoryUseCase interface {
	List(ctx context.Context) ([]*entities.User, error)

	Create(ctx context.Context, params CreateUserParams) (*entities.User, error)

	Get(ctx context.Context, userID string) (*entities.User, error)

	Update(ctx context.Context, userID string, params UpdateUserParams) (*entities.User, error)

	// Delete удаляет учетную запись; принадлежащие ей заметки удаляются
	// каскадно на уровне базы данных.
	Delete(ctx context.Context, userID string) error
}
