package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hitworks/swingmetrics/internal/report"
	"github.com/hitworks/swingmetrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored score sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		sessions, err := db.ListSessions()
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No stored sessions.")
			return nil
		}
		report.PrintSessionList(os.Stdout, sessions)
		return nil
	},
}
