package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voicetodo/voicetodo/internal/auth"
	"github.com/voicetodo/voicetodo/internal/handler/dto"
	"github.com/voicetodo/voicetodo/internal/model"
	"github.com/voicetodo/voicetodo/internal/schedule"
	"github.com/voicetodo/voicetodo/internal/service"
)

// TodoService defines the todo operations the handler depends on.
type TodoService interface {
	List(ctx context.Context, ownerID string) ([]*model.Todo, error)
	Create(ctx context.Context, input service.CreateTodoInput) (*model.Todo, error)
	Update(ctx context.Context, id, ownerID string, patch model.TodoPatch) (*model.Todo, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// TodoHandler handles HTTP requests for todo operations. The owner ID
// always comes from the authenticated identity in the request context,
// never from the request payload.
type TodoHandler struct {
	svc    TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/todos. The body is a bare JSON array, never
// null and never wrapped in an envelope.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	todos, err := h.svc.List(r.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponses(todos))
}

// Create handles POST /api/todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateTodoInput{
		OwnerID:       identity.UserID,
		Title:         req.Title,
		EstimatedTime: req.EstimatedTime,
		CreatedAt:     req.CreatedAt,
	}

	todo, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("todo_created",
		"todo_id", todo.ID,
		"user_id", identity.UserID,
	)

	writeJSON(w, http.StatusCreated, dto.ToTodoResponse(todo))
}

// Update handles PATCH /api/todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Todo ID is required")
		return
	}

	var req dto.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	patch := model.TodoPatch{
		Title:         req.Title,
		EstimatedTime: req.EstimatedTime,
		Completed:     req.Completed,
		SortOrder:     req.Order,
		CreatedAt:     req.CreatedAt,
	}

	todo, err := h.svc.Update(r.Context(), id, identity.UserID, patch)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("todo_updated",
		"todo_id", todo.ID,
		"user_id", identity.UserID,
	)

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(todo))
}

// Delete handles DELETE /api/todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Todo ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), id, identity.UserID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("todo_deleted",
		"todo_id", id,
		"user_id", identity.UserID,
	)

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "success"})
}

// Summary handles GET /api/todos/summary.
// The optional tz query parameter names an IANA timezone for the day
// window; it defaults to UTC.
func (h *TodoHandler) Summary(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	loc := time.UTC
	if tz := r.URL.Query().Get("tz"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TIMEZONE", "Unknown timezone: "+tz)
			return
		}
		loc = parsed
	}

	todos, err := h.svc.List(r.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	buckets := schedule.Partition(todos, time.Now().In(loc))
	writeJSON(w, http.StatusOK, dto.ToSummaryResponse(buckets))
}

// handleServiceError maps service errors to HTTP responses.
func (h *TodoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		writeError(w, http.StatusNotFound, "TODO_NOT_FOUND", "Todo not found")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrEmptyTitle):
		writeError(w, http.StatusBadRequest, "EMPTY_TITLE", "Title must not be empty")
	case errors.Is(err, service.ErrInvalidEstimate):
		writeError(w, http.StatusBadRequest, "INVALID_ESTIMATE", "Estimated time must be a positive number of minutes")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
