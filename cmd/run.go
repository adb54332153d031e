package cmd

import (
	"fmt"
	"os"

	"github.com/kdnguyen/gogaku/internal/app"
	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/llm"
	"github.com/kdnguyen/gogaku/internal/store"
	"github.com/kdnguyen/gogaku/internal/user"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load content catalog: %w", err)
	}

	kv := st.KV()
	opts := app.Options{
		Users:   user.NewService(kv),
		History: history.NewService(kv),
		Catalog: cat,
	}

	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		} else {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "The AI tutor will be unavailable.")
			cfg.Provider = ""
		}
	}
	if cfg.Provider != "" {
		provider, err := llm.NewProvider(ctx, cfg, kv)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "The AI tutor will be unavailable.")
		} else {
			opts.Provider = provider
		}
	}

	return app.Run(opts)
}
