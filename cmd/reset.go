package cmd

import (
	"fmt"

	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/store"
	"github.com/kdnguyen/gogaku/internal/user"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the signed-in user's game history and sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("this deletes your game history; re-run with --force to confirm")
		}

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
		users := user.NewService(kv)
		u, ok, err := users.Current(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no one is signed in; nothing to reset")
		}

		if err := history.NewService(kv).Clear(ctx, u.ID); err != nil {
			return err
		}
		if err := users.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("History cleared and signed out.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation check")
}
