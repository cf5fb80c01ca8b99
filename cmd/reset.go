package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local session history",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		n, err := st.ClearHistory(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d session(s).\n", n)
		return nil
	},
}
