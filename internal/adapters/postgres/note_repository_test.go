package postgres_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeep/internal/adapters/postgres"
	"notekeep/internal/domain/entities"
)

func noteColumns() []string {
	return []string{"id", "user_id", "title", "description", "created_at", "updated_at"}
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	inputNote := &entities.Note{
		UserID:      "owner-id",
		Title:       "shopping",
		Description: "milk and bread",
	}

	t.Run("Успешное создание заметки", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(inputNote.UserID, inputNote.Title, inputNote.Description).
			WillReturnRows(
				pgxmock.NewRows(noteColumns()).
					AddRow("note-id-1", inputNote.UserID, inputNote.Title, inputNote.Description, now, now),
			)

		repo := postgres.NewNoteRepository(mock)
		createdNote, err := repo.Create(ctx, inputNote)

		require.NoError(t, err)
		assert.Equal(t, "note-id-1", createdNote.ID)
		assert.Equal(t, inputNote.UserID, createdNote.UserID)
		assert.Equal(t, createdNote.CreatedAt, createdNote.UpdatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Отсутствующий владелец превращается в доменную ошибку", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(inputNote.UserID, inputNote.Title, inputNote.Description).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "notes_user_id_fkey"})

		repo := postgres.NewNoteRepository(mock)
		createdNote, err := repo.Create(ctx, inputNote)

		assert.Nil(t, createdNote)
		assert.ErrorIs(t, err, entities.ErrNoteOwnerMissing)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Общая ошибка БД оборачивается с контекстом", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(inputNote.UserID, inputNote.Title, inputNote.Description).
			WillReturnError(errors.New("database connection error"))

		repo := postgres.NewNoteRepository(mock)
		createdNote, err := repo.Create(ctx, inputNote)

		assert.Nil(t, createdNote)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error creating note")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_GetByID(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Заметка владельца найдена", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM notes").
			WithArgs("note-id-1", "owner-id").
			WillReturnRows(
				pgxmock.NewRows(noteColumns()).
					AddRow("note-id-1", "owner-id", "shopping", "milk and bread", now, now),
			)

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetByID(ctx, "note-id-1", "owner-id")

		require.NoError(t, err)
		assert.Equal(t, "shopping", note.Title)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Чужая заметка неотличима от несуществующей", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		// Заметка существует, но принадлежит другому пользователю: фильтр
		// по владельцу не находит строку.
		mock.ExpectQuery("SELECT .+ FROM notes").
			WithArgs("note-id-1", "other-user-id").
			WillReturnError(errNoRows())

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetByID(ctx, "note-id-1", "other-user-id")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_ListByUserID(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Список с пагинацией и общим количеством", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT.+ FROM notes").
			WithArgs("owner-id").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

		mock.ExpectQuery("SELECT .+ FROM notes").
			WithArgs("owner-id", 2, 0).
			WillReturnRows(
				pgxmock.NewRows(noteColumns()).
					AddRow("note-id-2", "owner-id", "second", "recently updated", now.Add(time.Hour), now.Add(2*time.Hour)).
					AddRow("note-id-1", "owner-id", "first", "older", now, now),
			)

		repo := postgres.NewNoteRepository(mock)
		notes, total, err := repo.ListByUserID(ctx, "owner-id", 2, 0)

		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, notes, 2)
		assert.Equal(t, "note-id-2", notes[0].ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Нулевой limit выдает все заметки без LIMIT", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT.+ FROM notes").
			WithArgs("owner-id").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery(`SELECT .+ FROM notes\s+WHERE user_id = \$1\s+ORDER BY updated_at DESC\s+OFFSET \$2`).
			WithArgs("owner-id", 0).
			WillReturnRows(
				pgxmock.NewRows(noteColumns()).
					AddRow("note-id-2", "owner-id", "second", "recently updated", now.Add(time.Hour), now.Add(2*time.Hour)).
					AddRow("note-id-1", "owner-id", "first", "older", now, now),
			)

		repo := postgres.NewNoteRepository(mock)
		notes, total, err := repo.ListByUserID(ctx, "owner-id", 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, notes, 2)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("У пользователя нет заметок", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT.+ FROM notes").
			WithArgs("lonely-id").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("SELECT .+ FROM notes").
			WithArgs("lonely-id", 10, 0).
			WillReturnRows(pgxmock.NewRows(noteColumns()))

		repo := postgres.NewNoteRepository(mock)
		notes, total, err := repo.ListByUserID(ctx, "lonely-id", 10, 0)

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, notes)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	inputNote := &entities.Note{
		ID:          "note-id-1",
		UserID:      "owner-id",
		Title:       "renamed",
		Description: "new text",
	}

	t.Run("Успешное обновление не трогает created_at", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		updatedAt := now.Add(time.Minute)
		mock.ExpectQuery("UPDATE notes .+").
			WithArgs(inputNote.ID, inputNote.UserID, inputNote.Title, inputNote.Description).
			WillReturnRows(
				pgxmock.NewRows(noteColumns()).
					AddRow(inputNote.ID, inputNote.UserID, inputNote.Title, inputNote.Description, now, updatedAt),
			)

		repo := postgres.NewNoteRepository(mock)
		updatedNote, err := repo.Update(ctx, inputNote)

		require.NoError(t, err)
		assert.Equal(t, now, updatedNote.CreatedAt)
		assert.Equal(t, updatedAt, updatedNote.UpdatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Обновление чужой заметки дает ErrNoteNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE notes .+").
			WithArgs(inputNote.ID, inputNote.UserID, inputNote.Title, inputNote.Description).
			WillReturnError(errNoRows())

		repo := postgres.NewNoteRepository(mock)
		updatedNote, err := repo.Update(ctx, inputNote)

		assert.Nil(t, updatedNote)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное удаление", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes").
			WithArgs("note-id-1", "owner-id").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewNoteRepository(mock)
		err = repo.Delete(ctx, "note-id-1", "owner-id")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Удаление чужой заметки дает ErrNoteNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes").
			WithArgs("note-id-1", "other-user-id").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewNoteRepository(mock)
		err = repo.Delete(ctx, "note-id-1", "other-user-id")

		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
