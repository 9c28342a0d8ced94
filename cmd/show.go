package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hitworks/swingmetrics/internal/report"
	"github.com/hitworks/swingmetrics/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <session-prefix>",
	Short: "Show a stored score session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		rec, err := db.GetSessionByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("lookup session: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("session not found: %s", args[0])
		}
		report.PrintSession(os.Stdout, *rec)
		return nil
	},
}
