package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/voicetodo/voicetodo/internal/model"
)

// ErrTodoNotFound covers both a genuinely missing todo and an ownership
// mismatch. Callers outside the owning user must not be able to tell the
// difference.
var ErrTodoNotFound = errors.New("todo not found")

const todoColumns = `id, user_id, title, estimated_time, completed, sort_order, created_at, updated_at`

// ListTodos retrieves all todos owned by ownerID, ordered by their manual
// sort position.
func (r *Repository) ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*model.Todo, 0)
	for rows.Next() {
		todo, err := scanTodoFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// GetTodo retrieves a single todo, scoped to its owner.
func (r *Repository) GetTodo(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1 AND user_id = $2
	`

	todo, err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// CreateTodo inserts a new todo, assigning the next manual sort position
// for the owner in the same statement: max existing order + 1, or 0 for
// the owner's first todo.
func (r *Repository) CreateTodo(ctx context.Context, todo *model.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, title, estimated_time, completed, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM todos WHERE user_id = $2),
			$6, $7)
		RETURNING sort_order
	`

	err := r.pool.QueryRow(ctx, query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.EstimatedTime,
		todo.Completed,
		todo.CreatedAt,
		todo.UpdatedAt,
	).Scan(&todo.SortOrder)

	if err != nil {
		// A foreign key violation means the owning user row is gone.
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// UpdateTodo applies a partial update to a todo owned by ownerID and
// returns the updated row. The ownership check happens inside the UPDATE
// itself; a foreign or missing todo yields ErrTodoNotFound.
func (r *Repository) UpdateTodo(ctx context.Context, id, ownerID string, patch model.TodoPatch) (*model.Todo, error) {
	query := `UPDATE todos SET updated_at = $3`
	args := []any{id, ownerID, time.Now().UTC()}
	argIndex := 4

	if patch.Title != nil {
		query += fmt.Sprintf(", title = $%d", argIndex)
		args = append(args, *patch.Title)
		argIndex++
	}

	if patch.EstimatedTime != nil {
		query += fmt.Sprintf(", estimated_time = $%d", argIndex)
		args = append(args, *patch.EstimatedTime)
		argIndex++
	}

	if patch.Completed != nil {
		query += fmt.Sprintf(", completed = $%d", argIndex)
		args = append(args, *patch.Completed)
		argIndex++
	}

	if patch.SortOrder != nil {
		query += fmt.Sprintf(", sort_order = $%d", argIndex)
		args = append(args, *patch.SortOrder)
		argIndex++
	}

	if patch.CreatedAt != nil {
		query += fmt.Sprintf(", created_at = $%d", argIndex)
		args = append(args, *patch.CreatedAt)
		argIndex++
	}

	query += ` WHERE id = $1 AND user_id = $2 RETURNING ` + todoColumns

	todo, err := scanTodo(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo removes a todo owned by ownerID.
func (r *Repository) DeleteTodo(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// scanTodo scans a single row into a Todo model.
func scanTodo(row pgx.Row) (*model.Todo, error) {
	var todo model.Todo
	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.EstimatedTime,
		&todo.Completed,
		&todo.SortOrder,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	return &todo, err
}

// scanTodoFromRows scans a row from pgx.Rows into a Todo model.
func scanTodoFromRows(rows pgx.Rows) (*model.Todo, error) {
	var todo model.Todo
	err := rows.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.EstimatedTime,
		&todo.Completed,
		&todo.SortOrder,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	return &todo, err
}
