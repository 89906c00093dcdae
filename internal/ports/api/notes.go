package api

import (
	"context"

	"notekeep/internal/domain/entities"
)

// UpdateNoteParams - поля изменения заметки. nil означает "не передано".
// При FullReplace title и description обязательны. Владелец, id и
// created_at неизменяемы в обоих режимах.
type UpdateNoteParams struct {
	Title       *string
	Description *string
	FullReplace bool
}

// NoteUseCase определяет операции над заметками. Идентичность вызывающего
// передается явным параметром callerID; каждая операция неявно ограничена
// заметками вызывающего.
type NoteUseCase interface {
	List(ctx context.Context, callerID string, limit, offset int) ([]*entities.Note, int, error)

	Create(ctx context.Context, callerID, title, description string) (*entities.Note, error)

	Get(ctx context.Context, callerID, noteID string) (*entities.Note, error)

	Update(ctx context.Context, callerID, noteID string, params UpdateNoteParams) (*entities.Note, error)

	Delete(ctx context.Context, callerID, noteID string) error
}
