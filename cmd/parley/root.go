package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley is a conversational agent with guardrails",
	Long: `Parley runs a conversational agent that tracks dialogue state, validates
responses with guardrails, and tags all logging with a correlation id.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort; a missing .env is fine.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("name", "ConversationalAgent", "Agent name")
	rootCmd.PersistentFlags().String("system-prompt", "", "System prompt override")
}
