package dto

import (
	"time"

	"notekeep/internal/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки. Владелец в теле
// не принимается и назначается из личности вызывающего.
type CreateNoteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateNoteRequest содержит данные для обновления заметки.
type UpdateNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// NoteResponse содержит представление заметки с вложенным владельцем.
type NoteResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Owner       *UserOwnerResponse `json:"owner"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ListNotesResponse содержит список заметок и примененную пагинацию.
// Limit 0 означает, что выдача не ограничивалась.
type ListNotesResponse struct {
	Notes      []*NoteResponse `json:"notes"`
	TotalCount int             `json:"total_count"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
}

// NewNoteResponse преобразует сущность заметки в ответ.
func NewNoteResponse(note *entities.Note) *NoteResponse {
	if note == nil {
		return nil
	}
	return &NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		Description: note.Description,
		Owner:       NewUserOwnerResponse(note.Owner),
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
}

// NewListNotesResponse преобразует список сущностей в ответ.
func NewListNotesResponse(notes []*entities.Note, total, limit, offset int) *ListNotesResponse {
	out := make([]*NoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, NewNoteResponse(note))
	}
	return &ListNotesResponse{
		Notes:      out,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}
}
