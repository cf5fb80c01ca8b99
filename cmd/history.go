package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/anshgoel/quizarena/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := st.RecentHistory(ctx, limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		fmt.Printf("%-17s %-14s %-7s %-8s %-7s %s\n",
			"PLAYED", "QUIZ", "SCORE", "POINTS", "STREAK", "MODE")
		for _, e := range entries {
			mode := "solo"
			if e.Multiplayer {
				mode = "room"
			}
			if e.Terminated {
				mode += " (out of lives)"
			}
			fmt.Printf("%-17s %-14s %-7s %-8d %-7d %s\n",
				e.PlayedAt.Local().Format("2006-01-02 15:04"),
				e.QuizID,
				fmt.Sprintf("%d/%d", e.Score, e.TotalQuestions),
				e.Points,
				e.BestStreak,
				mode,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to list")
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
