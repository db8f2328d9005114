// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/voicetodo/voicetodo/internal/metrics"
	"github.com/voicetodo/voicetodo/internal/model"
	"github.com/voicetodo/voicetodo/internal/repository"
)

// Todo service errors.
var (
	ErrTodoNotFound    = errors.New("todo not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrInvalidEstimate = errors.New("estimated time must be a positive number of minutes")
)

// TodoService handles todo business logic. Every operation is scoped to
// an owner ID taken from the authenticated identity; the ownership check
// itself lives in the repository's SQL, so no handler can forget it.
type TodoService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewTodoService creates a new TodoService.
func NewTodoService(repo *repository.Repository, recorder metrics.Recorder) *TodoService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TodoService{
		repo:    repo,
		metrics: recorder,
	}
}

// List returns the owner's todos in manual sort order.
// The result is never nil: an empty list is an empty slice.
// A session whose user record has since disappeared yields
// ErrUserNotFound rather than an empty list.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}

	todos, err := s.repo.ListTodos(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodoInput defines input for creating a todo.
type CreateTodoInput struct {
	OwnerID       string
	Title         string
	EstimatedTime int
	// CreatedAt overrides the creation timestamp when set. The voice
	// pipeline and the re-dating toggle both rely on this.
	CreatedAt *time.Time
}

// Create validates and persists a new todo. The manual sort position is
// assigned by the store: previous max + 1, or 0 on an empty list.
func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (*model.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if input.EstimatedTime <= 0 {
		return nil, ErrInvalidEstimate
	}

	now := time.Now().UTC()
	createdAt := now
	if input.CreatedAt != nil {
		createdAt = input.CreatedAt.UTC()
	}

	todo := &model.Todo{
		ID:            ulid.Make().String(),
		UserID:        input.OwnerID,
		Title:         title,
		EstimatedTime: input.EstimatedTime,
		Completed:     false,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	if err := s.repo.CreateTodo(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.metrics.IncTodoCreated()

	return todo, nil
}

// Update applies a partial update to one of the owner's todos and returns
// the updated record. A missing or foreign todo yields ErrTodoNotFound.
func (s *TodoService) Update(ctx context.Context, id, ownerID string, patch model.TodoPatch) (*model.Todo, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, ErrEmptyTitle
		}
		patch.Title = &trimmed
	}
	if patch.EstimatedTime != nil && *patch.EstimatedTime <= 0 {
		return nil, ErrInvalidEstimate
	}

	todo, err := s.repo.UpdateTodo(ctx, id, ownerID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.metrics.IncTodoUpdated()

	return todo, nil
}

// Delete removes one of the owner's todos.
func (s *TodoService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.DeleteTodo(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.metrics.IncTodoDeleted()

	return nil
}
