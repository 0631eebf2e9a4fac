package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parleyhq/parley"
	"github.com/parleyhq/parley/tool"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted demonstration",
	Long:  `Runs a short scripted conversation plus a tools demonstration, then exits.`,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := parley.New(func(o *parley.Options) { o.Name = "DemoAgent" })
		if err != nil {
			fmt.Printf("Error initializing parley: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("Parley Demo")
		fmt.Println(strings.Repeat("=", 50))

		fmt.Println("\n--- Conversational Agent ---")
		a, err := p.NewAgent()
		if err != nil {
			fmt.Printf("Error creating agent: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		for _, msg := range []string{"Hello!", "How are you?", "Can you help me?"} {
			fmt.Printf("User: %s\n", msg)
			response, err := a.ProcessMessage(ctx, msg)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Agent: %s\n\n", response)
		}

		summary := a.Summary()
		fmt.Printf("Summary: %d messages exchanged\n", summary.MessageCount)

		fmt.Println("\n--- Tools Demo ---")
		calc := tool.NewCalculator()
		result, err := calc.Call(map[string]any{"operation": tool.OpMultiply, "a": 15.0, "b": 7.0})
		if err != nil {
			fmt.Printf("Calculator error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Calculator: 15 x 7 = %v\n", result.(map[string]any)["result"])

		weather := tool.NewWeather()
		w, err := weather.Call(map[string]any{"location": "Seattle"})
		if err != nil {
			fmt.Printf("Weather error: %v\n", err)
			os.Exit(1)
		}
		payload := w.(map[string]any)
		fmt.Printf("Weather: %v - %v°F, %v\n", payload["location"], payload["temperature"], payload["conditions"])

		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("Demo Complete!")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("\nTo run the actual server: parley serve")
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
