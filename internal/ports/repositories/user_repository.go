// Package repositories определяет интерфейсы слоя хранения.
package repositories

import (
	"context"

	"notekeep/internal/domain/entities"
)

// UserRepository определяет операции хранения учетных записей.
// Уникальность username обеспечивается ограничением в базе данных,
// а не проверкой перед вставкой.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	List(ctx context.Context) ([]*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	Delete(ctx context.Context, id string) error
}
