package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parleyhq/parley"
	"github.com/parleyhq/parley/agent"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive chat session",
	Long: `Starts an interactive read-eval-print loop against a single agent.

Commands inside the loop:
  /reset    discard the conversation and start a new one
  /summary  print the conversation summary
  /quit     exit`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		systemPrompt, _ := cmd.Flags().GetString("system-prompt")

		p, err := parley.New(func(o *parley.Options) {
			o.Name = name
			o.SystemPrompt = systemPrompt
		})
		if err != nil {
			fmt.Printf("Error initializing parley: %v\n", err)
			os.Exit(1)
		}

		a, err := p.NewAgent()
		if err != nil {
			fmt.Printf("Error creating agent: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("--- Parley REPL ---")
		fmt.Printf("Conversation: %s\n", a.ConversationID())
		fmt.Println("Type /quit to exit.")

		reader := bufio.NewReader(os.Stdin)
		ctx := context.Background()

		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println("\nBye!")
				return
			}
			input := strings.TrimSpace(line)

			switch input {
			case "/quit", "/exit":
				fmt.Println("Bye!")
				return
			case "/reset":
				a.Reset()
				fmt.Printf("Conversation reset: %s\n", a.ConversationID())
				continue
			case "/summary":
				s := a.Summary()
				fmt.Printf("Conversation %s: %d messages\n", s.ConversationID, s.MessageCount)
				continue
			}

			response, err := a.ProcessMessage(ctx, input)
			if err != nil {
				if errors.Is(err, agent.ErrEmptyInput) {
					continue
				}
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Agent: %s\n", response)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
