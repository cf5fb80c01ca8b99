package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anshgoel/quizarena/internal/api"
	"github.com/anshgoel/quizarena/internal/app"
	"github.com/anshgoel/quizarena/internal/config"
	"github.com/anshgoel/quizarena/internal/store"
	"github.com/spf13/cobra"
)

// runApp loads configuration, opens the local store, and launches the
// TUI. A broken store is tolerated: the game runs without history.
func runApp(cmd *cobra.Command, quizID string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var st *store.Store
	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		st, err = store.Open(dbPath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Local store unavailable:", err)
		fmt.Fprintln(os.Stderr, "History will not be saved.")
		st = nil
	}
	if st != nil {
		defer st.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if id, err := st.ClientID(ctx); err == nil {
			cfg.ClientID = id
		}
		cancel()
	}

	return app.Run(app.Options{
		Config: cfg,
		API:    api.New(cfg.API.BaseURL, cfg.API.Timeout),
		Store:  st,
		QuizID: quizID,
	})
}
