package repositories

import (
	"context"

	"notekeep/internal/domain/entities"
)

// NoteRepository определяет операции хранения заметок. Каждый запрос
// ограничен владельцем: заметка другого пользователя неотличима от
// несуществующей.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)

	GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error)

	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error)

	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)

	Delete(ctx context.Context, noteID, userID string) error
}
