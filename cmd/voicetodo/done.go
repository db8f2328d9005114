package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voicetodo/voicetodo/internal/handler/dto"
	"github.com/voicetodo/voicetodo/internal/model"
	"github.com/voicetodo/voicetodo/internal/schedule"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Toggle completion of one or more todos",
	Long: `Toggle completion of one or more todos.

Completing an overdue todo moves it onto today's list as an open task
instead; finish it with a second toggle once it is current.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	todos, err := api.ListTodos(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, arg := range args {
		target, err := resolveTodo(todos, arg)
		if err != nil {
			return err
		}

		patch := schedule.TogglePatch(toModelTodo(target), now)
		updated, err := api.UpdateTodo(ctx, target.ID, dto.UpdateTodoRequest{
			Completed: patch.Completed,
			CreatedAt: patch.CreatedAt,
		})
		if err != nil {
			return err
		}

		switch {
		case patch.CreatedAt != nil:
			fmt.Printf("Moved %s to today: %s\n", shortID(updated.ID), updated.Title)
		case updated.Completed:
			fmt.Printf("Done %s: %s\n", shortID(updated.ID), updated.Title)
		default:
			fmt.Printf("Reopened %s: %s\n", shortID(updated.ID), updated.Title)
		}
	}

	return nil
}

// resolveTodo finds a todo by ID or unique ID prefix.
func resolveTodo(todos []dto.TodoResponse, idPrefix string) (dto.TodoResponse, error) {
	prefix := strings.ToLower(idPrefix)

	var matches []dto.TodoResponse
	for _, todo := range todos {
		id := strings.ToLower(todo.ID)
		if id == prefix {
			return todo, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, todo)
		}
	}

	switch len(matches) {
	case 0:
		return dto.TodoResponse{}, fmt.Errorf("no todo matches %q", idPrefix)
	case 1:
		return matches[0], nil
	default:
		return dto.TodoResponse{}, fmt.Errorf("%q is ambiguous: matches %d todos", idPrefix, len(matches))
	}
}

// toModelTodo converts an API response into the domain shape the
// scheduling helpers work on.
func toModelTodo(todo dto.TodoResponse) *model.Todo {
	return &model.Todo{
		ID:            todo.ID,
		Title:         todo.Title,
		EstimatedTime: todo.EstimatedTime,
		Completed:     todo.Completed,
		SortOrder:     todo.Order,
		CreatedAt:     todo.CreatedAt,
		UpdatedAt:     todo.UpdatedAt,
	}
}
