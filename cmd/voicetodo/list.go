package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voicetodo/voicetodo/internal/handler/dto"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show today's and overdue todos",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listAll bool

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "show every todo instead of the daily view")
}

func runList(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if listAll {
		todos, err := api.ListTodos(ctx)
		if err != nil {
			return err
		}
		if len(todos) == 0 {
			fmt.Println("No todos yet.")
			return nil
		}
		for _, todo := range todos {
			fmt.Println(formatTodoLine(todo, false))
		}
		return nil
	}

	summary, err := api.Summary(ctx, localTimezone())
	if err != nil {
		return err
	}

	if len(summary.Overdue) > 0 {
		fmt.Println(headingStyle.Render("Overdue"))
		for _, todo := range summary.Overdue {
			fmt.Println(overdueStyle.Render(formatTodoLine(todo, true)))
		}
		fmt.Println()
	}

	fmt.Println(headingStyle.Render("Today"))
	if len(summary.Today) == 0 {
		fmt.Println(mutedStyle.Render("  nothing scheduled"))
	}
	for _, todo := range summary.Today {
		fmt.Println(formatTodoLine(todo, false))
	}

	fmt.Println()
	if summary.AllDone && len(summary.Today) > 0 {
		fmt.Println(progressStyle.Render("All done for today!"))
	} else {
		fmt.Println(progressStyle.Render(fmt.Sprintf("Progress: %d%%", summary.Progress)))
	}

	return nil
}

// formatTodoLine renders one todo as a single display line.
func formatTodoLine(todo dto.TodoResponse, overdue bool) string {
	mark := "[ ]"
	if todo.Completed {
		mark = "[x]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s  %s", mark, shortID(todo.ID), todo.Title)
	fmt.Fprintf(&b, "  %s", mutedStyle.Render(fmt.Sprintf("(%dm)", todo.EstimatedTime)))
	if overdue {
		fmt.Fprintf(&b, "  %s", mutedStyle.Render(todo.CreatedAt.Format("Jan 2")))
	}

	line := b.String()
	if todo.Completed {
		return doneStyle.Render(line)
	}
	return line
}

// shortID returns a display prefix of a todo ID.
func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToLower(id[:8])
	}
	return strings.ToLower(id)
}

// localTimezone names the local IANA zone for the summary request, or
// empty (server-side UTC) when the zone has no portable name.
func localTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	loc := time.Local.String()
	if loc == "Local" || loc == "" {
		return ""
	}
	return loc
}
