package cmd

import (
	"fmt"
	"os"

	"github.com/kdnguyen/gogaku/internal/study"
	"github.com/spf13/cobra"
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show recent Japan-related headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := os.Getenv("GOGAKU_NEWS_API_KEY")

		items, err := study.NewNewsClient(apiKey).Fetch(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Headlines unavailable, showing study tips instead:", err)
		}
		for _, item := range items {
			fmt.Printf("%s\n  %s\n\n", item.Title, item.Summary)
		}
		return nil
	},
}
