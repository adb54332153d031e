package cmd

import (
	"fmt"

	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/store"
	"github.com/kdnguyen/gogaku/internal/user"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent game results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		page, _ := cmd.Flags().GetInt("page")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		kv := st.KV()
		u, ok, err := user.NewService(kv).Current(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no one is signed in; run gogaku and sign in first")
		}

		p, err := history.NewService(kv).Page(ctx, u.ID, page)
		if err != nil {
			return err
		}
		if len(p.Records) == 0 {
			fmt.Println("No games recorded yet.")
			return nil
		}

		for _, rec := range p.Records {
			fmt.Printf("  %s  %-32s %d/%d\n", rec.Time, rec.Title, rec.Score, rec.Total)
		}
		fmt.Printf("\npage %d of %d (%d games)\n", p.Page, p.TotalPages, p.Total)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("page", 1, "Page of results to show")
}
