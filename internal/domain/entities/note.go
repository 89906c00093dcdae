package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок. ErrNoteNotFound возвращается и для чужих заметок:
// несуществующая и не принадлежащая вызывающему заметка неразличимы.
var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrNoteOwnerMissing = errors.New("note owner does not exist")
)

// Note представляет заметку. UserID назначается один раз при создании из
// идентичности вызывающего и далее неизменяем, как и CreatedAt.
type Note struct {
	ID          string
	UserID      string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Owner заполняется при чтении публичными полями владельца.
	Owner *User
}
