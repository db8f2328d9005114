package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Short:   "Delete one or more todos",
	Aliases: []string{"delete"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	todos, err := api.ListTodos(ctx)
	if err != nil {
		return err
	}

	for _, arg := range args {
		target, err := resolveTodo(todos, arg)
		if err != nil {
			return err
		}

		if err := api.DeleteTodo(ctx, target.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s: %s\n", shortID(target.ID), target.Title)
	}

	return nil
}
