// Package main implements the voicetodo CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "voicetodo:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "voicetodo",
	Short:         "Voice-driven todo list client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagServer string
	flagToken  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "server base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "session token (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
}
