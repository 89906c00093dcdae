// Package notes содержит HTTP обработчики для управления заметками.
// Каждая операция ограничена заметками вызывающего.
package notes

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notekeep/internal/adapters/http/middleware"
	"notekeep/internal/adapters/http/respond"
	"notekeep/internal/app/dto"
	"notekeep/internal/ports/api"
	"notekeep/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListNotes   = "notes handler: list"
	LogHandlerCreateNote  = "notes handler: create"
	LogHandlerGetNote     = "notes handler: get"
	LogHandlerUpdateNote  = "notes handler: update"
	LogHandlerReplaceNote = "notes handler: replace"
	LogHandlerDeleteNote  = "notes handler: delete"

	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler содержит HTTP обработчики для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{
		noteUseCase: noteUseCase,
	}
}

// List обрабатывает запрос на получение списка заметок вызывающего.
// Пагинация применяется только по явным параметрам limit/offset; ответ
// повторяет примененные значения, limit 0 означает выдачу целиком.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerListNotes)

	claims, ok := middleware.AuthClaims(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	limit, err := strconv.Atoi(ctx.Query("limit", "0"))
	if err != nil || limit < 0 {
		return respond.BadRequest(ctx, ErrMsgInvalidPagination)
	}
	offset, err := strconv.Atoi(ctx.Query("offset", "0"))
	if err != nil || offset < 0 {
		return respond.BadRequest(ctx, ErrMsgInvalidPagination)
	}

	notes, total, err := h.noteUseCase.List(requestCtx, claims.UserID, limit, offset)
	if err != nil {
		log.Error(requestCtx, "failed to list notes", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewListNotesResponse(notes, total, limit, offset)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create обрабатывает запрос на создание заметки. Владелец назначается
// из личности вызывающего; owner в теле запроса не принимается.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateNote)

	claims, ok := middleware.AuthClaims(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.Create(requestCtx, claims.UserID, req.Title, req.Description)
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Get обрабатывает запрос на получение заметки по ID. Чужая заметка
// дает тот же ответ, что и несуществующая.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetNote)

	claims, ok := middleware.AuthClaims(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	noteID, err := pathNoteID(ctx)
	if err != nil {
		return respond.NotFound(ctx)
	}

	note, err := h.noteUseCase.Get(requestCtx, claims.UserID, noteID)
	if err != nil {
		log.Error(requestCtx, "failed to get note", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Replace обрабатывает PUT: полное замещение заметки.
func (h *Handler) Replace(ctx fiber.Ctx) error {
	return h.update(ctx, true)
}

// Update обрабатывает PATCH: частичное изменение заметки.
func (h *Handler) Update(ctx fiber.Ctx) error {
	return h.update(ctx, false)
}

func (h *Handler) update(ctx fiber.Ctx, fullReplace bool) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateNote, zap.Bool("fullReplace", fullReplace))

	claims, ok := middleware.AuthClaims(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	noteID, err := pathNoteID(ctx)
	if err != nil {
		return respond.NotFound(ctx)
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.Update(requestCtx, claims.UserID, noteID, api.UpdateNoteParams{
		Title:       req.Title,
		Description: req.Description,
		FullReplace: fullReplace,
	})
	if err != nil {
		log.Error(requestCtx, "failed to update note", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Delete обрабатывает запрос на безвозвратное удаление заметки.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteNote)

	claims, ok := middleware.AuthClaims(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	noteID, err := pathNoteID(ctx)
	if err != nil {
		return respond.NotFound(ctx)
	}

	if err := h.noteUseCase.Delete(requestCtx, claims.UserID, noteID); err != nil {
		log.Error(requestCtx, "failed to delete note", zap.Error(err))
		return respond.DomainError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// pathNoteID извлекает идентификатор заметки из пути. Синтаксически
// неверный идентификатор неотличим для клиента от отсутствующей записи.
func pathNoteID(ctx fiber.Ctx) (string, error) {
	noteID := ctx.Params("note_id")
	if _, err := uuid.Parse(noteID); err != nil {
		return "", fmt.Errorf("parsing note id: %w", err)
	}
	return noteID, nil
}

func unauthorized(ctx fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": respond.MsgUnauthorized,
	})
}
