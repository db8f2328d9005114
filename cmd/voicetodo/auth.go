package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	user, err := api.Me(context.Background())
	if err != nil {
		return err
	}

	if user.Name != "" {
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Println(user.Email)
	}
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the current session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	if err := api.Logout(context.Background()); err != nil {
		return err
	}

	fmt.Println("Logged out. Remove the token from your config file.")
	return nil
}
