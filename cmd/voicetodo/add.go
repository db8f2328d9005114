package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voicetodo/voicetodo/internal/handler/dto"
)

var addCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var addEstimate int

func init() {
	addCmd.Flags().IntVarP(&addEstimate, "estimate", "e", 15, "estimated time in minutes")
}

func runAdd(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	todo, err := api.CreateTodo(context.Background(), dto.CreateTodoRequest{
		Title:         strings.Join(args, " "),
		EstimatedTime: addEstimate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %s: %s (%dm)\n", shortID(todo.ID), todo.Title, todo.EstimatedTime)
	return nil
}
