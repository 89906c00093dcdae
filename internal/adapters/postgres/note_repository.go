package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notekeep/internal/domain/entities"
	"notekeep/internal/ports/repositories"
	"notekeep/pkg/logger"
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
// Все запросы чтения и изменения дополнительно фильтруются по владельцу,
// поэтому чужая заметка неотличима от несуществующей.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}

// Create сохраняет новую заметку. Владелец уже назначен бизнес-логикой из
// идентичности вызывающего; ссылочную целостность контролирует внешний ключ.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	query := `
        INSERT INTO notes (user_id, title, description)
        VALUES ($1, $2, $3)
        RETURNING id, user_id, title, description, created_at, updated_at
    `

	var createdNote entities.Note
	err := r.pool.QueryRow(ctx, query,
		note.UserID,
		note.Title,
		note.Description,
	).Scan(
		&createdNote.ID,
		&createdNote.UserID,
		&createdNote.Title,
		&createdNote.Description,
		&createdNote.CreatedAt,
		&createdNote.UpdatedAt,
	)

	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			log.Debug(ctx, "note owner does not exist", zap.String("userID", note.UserID))
			return nil, entities.ErrNoteOwnerMissing
		}
		log.Error(ctx, "error creating note", zap.Error(err))
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", createdNote.ID))
	return &createdNote, nil
}

// GetByID получает заметку по ID и владельцу.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID), zap.String("userID", userID))

	query := `
        SELECT id, user_id, title, description, created_at, updated_at
        FROM notes
        WHERE id = $1 AND user_id = $2
    `

	var note entities.Note
	err := r.pool.QueryRow(ctx, query, noteID, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Description,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "error getting note", zap.Error(err))
		return nil, fmt.Errorf("error getting note: %w", err)
	}

	return &note, nil
}

// ListByUserID получает заметки владельца, сначала недавно измененные.
// limit <= 0 возвращает все заметки без ограничения.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByUserID"))
	log.Debug(ctx, "listing notes", zap.String("userID", userID), zap.Int("limit", limit), zap.Int("offset", offset))

	var totalCount int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notes WHERE user_id = $1`,
		userID,
	).Scan(&totalCount)

	if err != nil {
		log.Error(ctx, "error counting notes", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting notes: %w", err)
	}

	// limit <= 0 означает выдачу без ограничения.
	query := `
        SELECT id, user_id, title, description, created_at, updated_at
        FROM notes
        WHERE user_id = $1
        ORDER BY updated_at DESC
        OFFSET $2
    `
	args := []any{userID, offset}
	if limit > 0 {
		query = `
        SELECT id, user_id, title, description, created_at, updated_at
        FROM notes
        WHERE user_id = $1
        ORDER BY updated_at DESC
        LIMIT $2 OFFSET $3
    `
		args = []any{userID, limit, offset}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing notes", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Description,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "error scanning note row", zap.Error(err))
			return nil, 0, fmt.Errorf("error scanning note row: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating note rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating note rows: %w", err)
	}

	return notes, totalCount, nil
}

// Update сохраняет новые title и description заметки и обновляет updated_at.
// Владелец и created_at не участвуют в запросе и не могут измениться.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	query := `
        UPDATE notes
        SET title = $3, description = $4, updated_at = now()
        WHERE id = $1 AND user_id = $2
        RETURNING id, user_id, title, description, created_at, updated_at
    `

	var updatedNote entities.Note
	err := r.pool.QueryRow(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Description,
	).Scan(
		&updatedNote.ID,
		&updatedNote.UserID,
		&updatedNote.Title,
		&updatedNote.Description,
		&updatedNote.CreatedAt,
		&updatedNote.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not owned by caller", zap.String("noteID", note.ID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "error updating note", zap.Error(err))
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	return &updatedNote, nil
}

// Delete безвозвратно удаляет заметку владельца.
func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		log.Error(ctx, "error deleting note", zap.Error(err))
		return fmt.Errorf("error deleting note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by caller", zap.String("noteID", noteID))
		return entities.ErrNoteNotFound
	}

	return nil
}
