package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdnguyen/gogaku/internal/llm"
	"github.com/kdnguyen/gogaku/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recent LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		entries, err := llm.RequestLog(context.Background(), s.KV())
		if err != nil {
			return fmt.Errorf("read request log: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-20s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 96))

		shown := 0
		for _, e := range entries {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if shown >= limit {
				break
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-20s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Timestamp, e.Purpose, model, e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
			shown++
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <n>",
	Short: "View full request/response for the n-th most recent request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var n int
		if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		entries, err := llm.RequestLog(context.Background(), s.KV())
		if err != nil {
			return fmt.Errorf("read request log: %w", err)
		}
		if n < 1 || n > len(entries) {
			return fmt.Errorf("index %d out of range; %d requests recorded", n, len(entries))
		}
		e := entries[n-1]

		sep := strings.Repeat("─", 60)

		fmt.Printf("Time:      %s\n", e.Timestamp)
		fmt.Printf("Model:     %s\n", e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REQUEST")
		fmt.Println(sep)
		if e.RequestBody != "" {
			fmt.Println(e.RequestBody)
		} else {
			fmt.Println("(not captured)")
		}

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		if e.ResponseBody != "" {
			fmt.Println(e.ResponseBody)
		} else {
			fmt.Println("(not captured)")
		}

		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. tutor-chat)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
}
