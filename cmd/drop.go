package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hitworks/swingmetrics/internal/storage"
)

var dropCmd = &cobra.Command{
	Use:   "drop <session-prefix>",
	Short: "Delete stored score sessions by id prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		n, err := db.DeleteSessionByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("no sessions match prefix %q", args[0])
		}
		fmt.Printf("Deleted %d session(s)\n", n)
		return nil
	},
}
