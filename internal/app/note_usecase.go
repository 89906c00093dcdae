package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notekeep/internal/domain/entities"
	"notekeep/internal/ports/api"
	"notekeep/internal/ports/repositories"
	"notekeep/pkg/logger"
)

const (
	methodNoteList   = "List"
	methodNoteCreate = "Create"
	methodNoteGet    = "Get"
	methodNoteUpdate = "Update"
	methodNoteDelete = "Delete"

	msgListingNotes = "listing caller notes"
	msgCreatingNote = "creating note"
	msgNoteCreated  = "note created"
	msgFetchingNote = "fetching note"
	msgUpdatingNote = "updating note"
	msgNoteUpdated  = "note updated"
	msgDeletingNote = "deleting note"
	msgNoteDeleted  = "note deleted"

	errCtxValidatingTitle       = "validating title"
	errCtxValidatingDescription = "validating description"
	errCtxCreatingNote          = "creating note"
	errCtxFetchingNote          = "fetching note"
	errCtxListingNotes          = "listing notes"
	errCtxUpdatingNote          = "updating note"
	errCtxDeletingNote          = "deleting note"
	errCtxLoadingOwner          = "loading note owner"
)

// NoteUseCaseImpl реализует интерфейс api.NoteUseCase. Идентичность
// вызывающего всегда приходит явным параметром; состояние между
// запросами не хранится, каждая операция перечитывает базу.
type NoteUseCaseImpl struct {
	noteRepo repositories.NoteRepository
	userRepo repositories.UserRepository
}

// NewNoteUseCase создает новый экземпляр сервиса заметок.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	userRepo repositories.UserRepository,
) api.NoteUseCase {
	return &NoteUseCaseImpl{
		noteRepo: noteRepo,
		userRepo: userRepo,
	}
}

// attachOwner заполняет публичные поля владельца из текущего состояния
// базы. Все заметки в выдаче принадлежат вызывающему, поэтому владелец
// читается один раз.
func (uc *NoteUseCaseImpl) attachOwner(ctx context.Context, callerID string, notes ...*entities.Note) error {
	if len(notes) == 0 {
		return nil
	}

	owner, err := uc.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxLoadingOwner, err)
	}

	for _, note := range notes {
		note.Owner = owner
	}
	return nil
}

// List возвращает заметки вызывающего, сначала недавно измененные.
// limit <= 0 возвращает все заметки; ограничение применяется только по
// явному запросу клиента.
func (uc *NoteUseCaseImpl) List(ctx context.Context, callerID string, limit, offset int) ([]*entities.Note, int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodNoteList), zap.String("callerID", callerID))
	log.Debug(ctx, msgListingNotes, zap.Int("limit", limit), zap.Int("offset", offset))

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	notes, total, err := uc.noteRepo.ListByUserID(ctx, callerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	if err := uc.attachOwner(ctx, callerID, notes...); err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

// Create создает заметку вызывающего. Владелец назначается здесь и только
// здесь; любые переданные клиентом owner, id и отметки времени игнорируются
// еще на уровне транспорта.
func (uc *NoteUseCaseImpl) Create(ctx context.Context, callerID, title, description string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodNoteCreate), zap.String("callerID", callerID))
	log.Debug(ctx, msgCreatingNote)

	if title == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTitle, entities.ErrEmptyTitle)
	}
	if description == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingDescription, entities.ErrEmptyDescription)
	}

	note := &entities.Note{
		UserID:      callerID,
		Title:       title,
		Description: description,
	}

	createdNote, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	if err := uc.attachOwner(ctx, callerID, createdNote); err != nil {
		return nil, err
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", createdNote.ID))
	return createdNote, nil
}

// Get возвращает заметку вызывающего. Чужая заметка дает ту же ошибку,
// что и несуществующая.
func (uc *NoteUseCaseImpl) Get(ctx context.Context, callerID, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodNoteGet), zap.String("noteID", noteID))
	log.Debug(ctx, msgFetchingNote)

	note, err := uc.noteRepo.GetByID(ctx, noteID, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingNote, err)
	}

	if err := uc.attachOwner(ctx, callerID, note); err != nil {
		return nil, err
	}

	return note, nil
}

// Update применяет изменения к заметке вызывающего. При полном замещении
// title и description обязательны; при частичном изменяются только
// переданные поля. Владелец и created_at неизменяемы в обоих режимах.
func (uc *NoteUseCaseImpl) Update(ctx context.Context, callerID, noteID string, params api.UpdateNoteParams) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodNoteUpdate), zap.String("noteID", noteID))
	log.Debug(ctx, msgUpdatingNote, zap.Bool("fullReplace", params.FullReplace))

	note, err := uc.noteRepo.GetByID(ctx, noteID, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingNote, err)
	}

	if params.FullReplace && params.Title == nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTitle, entities.ErrEmptyTitle)
	}
	if params.FullReplace && params.Description == nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingDescription, entities.ErrEmptyDescription)
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingTitle, entities.ErrEmptyTitle)
		}
		note.Title = *params.Title
	}
	if params.Description != nil {
		if *params.Description == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingDescription, entities.ErrEmptyDescription)
		}
		note.Description = *params.Description
	}

	updatedNote, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	if err := uc.attachOwner(ctx, callerID, updatedNote); err != nil {
		return nil, err
	}

	log.Info(ctx, msgNoteUpdated)
	return updatedNote, nil
}

// Delete безвозвратно удаляет заметку вызывающего.
func (uc *NoteUseCaseImpl) Delete(ctx context.Context, callerID, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodNoteDelete), zap.String("noteID", noteID))
	log.Debug(ctx, msgDeletingNote)

	if err := uc.noteRepo.Delete(ctx, noteID, callerID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted)
	return nil
}
