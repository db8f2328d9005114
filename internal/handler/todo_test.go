package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voicetodo/voicetodo/internal/auth"
	"github.com/voicetodo/voicetodo/internal/handler/dto"
	"github.com/voicetodo/voicetodo/internal/model"
	"github.com/voicetodo/voicetodo/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTodoService implements TodoService with canned behavior.
type fakeTodoService struct {
	todos     []*model.Todo
	listErr   error
	created   []service.CreateTodoInput
	createErr error
	updated   []model.TodoPatch
	updateErr error
	deleted   []string
	deleteErr error
	ownerIDs  []string
}

func (f *fakeTodoService) List(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	f.ownerIDs = append(f.ownerIDs, ownerID)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.todos, nil
}

func (f *fakeTodoService) Create(ctx context.Context, input service.CreateTodoInput) (*model.Todo, error) {
	f.ownerIDs = append(f.ownerIDs, input.OwnerID)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, input)
	now := time.Now().UTC()
	return &model.Todo{
		ID:            "new-id",
		UserID:        input.OwnerID,
		Title:         input.Title,
		EstimatedTime: input.EstimatedTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (f *fakeTodoService) Update(ctx context.Context, id, ownerID string, patch model.TodoPatch) (*model.Todo, error) {
	f.ownerIDs = append(f.ownerIDs, ownerID)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, patch)
	todo := &model.Todo{ID: id, UserID: ownerID, Title: "updated", EstimatedTime: 5}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	return todo, nil
}

func (f *fakeTodoService) Delete(ctx context.Context, id, ownerID string) error {
	f.ownerIDs = append(f.ownerIDs, ownerID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// newTodoRouter mounts the handler the way the server does, with a
// fixed identity injected ahead of it.
func newTodoRouter(svc TodoService, userID string) http.Handler {
	h := NewTodoHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.ContextWithIdentity(req.Context(), &model.Identity{UserID: userID, Email: "u@example.com"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/api/todos", h.List)
	r.Post("/api/todos", h.Create)
	r.Get("/api/todos/summary", h.Summary)
	r.Patch("/api/todos/{id}", h.Update)
	r.Delete("/api/todos/{id}", h.Delete)
	return r
}

func TestTodoList(t *testing.T) {
	now := time.Now().UTC()
	svc := &fakeTodoService{todos: []*model.Todo{
		{ID: "t1", UserID: "u1", Title: "First", EstimatedTime: 10, SortOrder: 0, CreatedAt: now, UpdatedAt: now},
		{ID: "t2", UserID: "u1", Title: "Second", EstimatedTime: 20, SortOrder: 1, CreatedAt: now, UpdatedAt: now},
	}}

	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response []dto.TodoResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(response))
	}
	if response[0].ID != "t1" || response[0].Order != 0 {
		t.Errorf("unexpected first todo: %+v", response[0])
	}

	if len(svc.ownerIDs) != 1 || svc.ownerIDs[0] != "u1" {
		t.Errorf("expected owner u1 from identity, got %v", svc.ownerIDs)
	}
}

func TestTodoList_EmptyIsArray(t *testing.T) {
	svc := &fakeTodoService{}

	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	// The wire shape is a bare array, never null and never an envelope
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty array, got %s", got)
	}
}

func TestTodoCreate(t *testing.T) {
	svc := &fakeTodoService{}

	body := strings.NewReader(`{"title": "Walk the dog", "estimatedTime": 30}`)
	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/todos", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response dto.TodoResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Title != "Walk the dog" || response.EstimatedTime != 30 {
		t.Errorf("unexpected todo: %+v", response)
	}

	if len(svc.created) != 1 || svc.created[0].OwnerID != "u1" {
		t.Fatalf("expected one create for u1, got %+v", svc.created)
	}
}

func TestTodoCreate_InvalidJSON(t *testing.T) {
	svc := &fakeTodoService{}

	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "INVALID_JSON")
}

func TestTodoCreate_ValidationError(t *testing.T) {
	svc := &fakeTodoService{createErr: service.ErrEmptyTitle}

	body := strings.NewReader(`{"title": "", "estimatedTime": 30}`)
	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/todos", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "EMPTY_TITLE")
}

func TestTodoUpdate_NotFound(t *testing.T) {
	// The service reports not-found for missing and foreign todos alike
	svc := &fakeTodoService{updateErr: service.ErrTodoNotFound}

	body := strings.NewReader(`{"completed": true}`)
	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/todos/someone-elses", body))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "TODO_NOT_FOUND")
}

func TestTodoUpdate(t *testing.T) {
	svc := &fakeTodoService{}

	body := strings.NewReader(`{"completed": true, "order": 3}`)
	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/todos/t1", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(svc.updated) != 1 {
		t.Fatalf("expected one update, got %d", len(svc.updated))
	}
	patch := svc.updated[0]
	if patch.Completed == nil || !*patch.Completed {
		t.Error("expected completed=true in patch")
	}
	if patch.SortOrder == nil || *patch.SortOrder != 3 {
		t.Error("expected order=3 in patch")
	}
	if patch.Title != nil {
		t.Error("absent fields must stay nil in the patch")
	}
}

func TestTodoDelete(t *testing.T) {
	svc := &fakeTodoService{}

	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/todos/t1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response dto.StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Status != "success" {
		t.Errorf("unexpected status body: %q", response.Status)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "t1" {
		t.Errorf("expected t1 deleted, got %v", svc.deleted)
	}
}

func TestTodoDelete_NotFound(t *testing.T) {
	svc := &fakeTodoService{deleteErr: service.ErrTodoNotFound}

	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/todos/gone", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestTodoSummary(t *testing.T) {
	now := time.Now().UTC()
	svc := &fakeTodoService{todos: []*model.Todo{
		{ID: "today-done", UserID: "u1", Title: "Done", EstimatedTime: 10, Completed: true, CreatedAt: now, UpdatedAt: now},
		{ID: "today-open", UserID: "u1", Title: "Open", EstimatedTime: 10, CreatedAt: now.Add(-time.Hour), UpdatedAt: now},
		{ID: "overdue", UserID: "u1", Title: "Old", EstimatedTime: 10, CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now},
	}}

	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todos/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response dto.SummaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.Today) != 2 {
		t.Errorf("expected 2 today, got %d", len(response.Today))
	}
	if len(response.Overdue) != 1 {
		t.Errorf("expected 1 overdue, got %d", len(response.Overdue))
	}
	if response.Progress != 50 {
		t.Errorf("expected progress 50, got %d", response.Progress)
	}
	if response.AllDone {
		t.Error("expected allDone=false")
	}
}

func TestTodoSummary_BadTimezone(t *testing.T) {
	svc := &fakeTodoService{}

	rec := httptest.NewRecorder()
	newTodoRouter(svc, "u1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todos/summary?tz=Mars%2FOlympus", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "INVALID_TIMEZONE")
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if response.Code != want {
		t.Errorf("expected code %s, got %s", want, response.Code)
	}
}
