package cmd

import (
	"fmt"

	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/store"
	"github.com/kdnguyen/gogaku/internal/user"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics for the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

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

		hist := history.NewService(kv)
		stats, err := hist.Stats(ctx, u.ID)
		if err != nil {
			return err
		}
		progress, err := hist.LevelProgress(ctx, u.ID)
		if err != nil {
			return err
		}

		name := u.Name
		if name == "" {
			name = u.Email
		}
		fmt.Printf("Stats for %s\n\n", name)
		fmt.Printf("  Games played    %d\n", stats.GamesPlayed)
		fmt.Printf("  Grammar points  %d\n", stats.GrammarPoints)
		fmt.Printf("  Study hours     %.1f\n", stats.StudyHours)
		fmt.Printf("  Achievements    %d / 5\n\n", stats.Achievements)
		fmt.Println("  JLPT level distribution")
		fmt.Printf("    N5 %3d%%   N4 %3d%%   N3 %3d%%   N2 %3d%%   N1 %3d%%\n",
			progress.N5, progress.N4, progress.N3, progress.N2, progress.N1)
		return nil
	},
}
