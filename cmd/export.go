package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hitworks/swingmetrics/internal/model"
	"github.com/hitworks/swingmetrics/internal/storage"
)

var (
	exportFormat string
	exportOut    string
	exportPlayer string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored sessions as JSON or CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportPlayer, "player", "", "restrict to one player id")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	summaries, err := db.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	var records []model.SessionRecord
	for _, s := range summaries {
		if exportPlayer != "" && s.PlayerID != exportPlayer {
			continue
		}
		rec, err := db.GetSessionByPrefix(s.SessionID)
		if err != nil {
			return fmt.Errorf("load session %s: %w", s.SessionID, err)
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}

	out := io.Writer(os.Stdout)
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	switch exportFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case "csv":
		if err := writeCSV(out, records); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q: expected json or csv", exportFormat)
	}

	if exportOut != "" {
		fmt.Printf("Exported %d session(s) to %s\n", len(records), exportOut)
	}
	return nil
}

func writeCSV(w io.Writer, records []model.SessionRecord) error {
	header := []string{
		"session_id", "player_id", "created_at",
		"body", "bat", "brain", "ball", "composite", "composite_grade",
		"ground_flow", "core_flow", "upper_flow",
		"leak_type",
		"cur_bat_speed", "ceil_bat_speed", "cur_exit_velo", "ceil_exit_velo",
		"swing_count", "bat_coverage",
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, ",")); err != nil {
		return err
	}
	for _, r := range records {
		s := r.Score
		row := []string{
			r.SessionID, r.PlayerID, r.CreatedAt,
			strconv.Itoa(s.Body.Score), strconv.Itoa(s.Bat.Score),
			strconv.Itoa(s.Brain.Score), strconv.Itoa(s.Ball.Score),
			strconv.Itoa(s.Composite.Score), s.Composite.Grade,
			strconv.Itoa(s.GroundFlow), strconv.Itoa(s.CoreFlow), strconv.Itoa(s.UpperFlow),
			string(s.Leak.Type),
			fmt.Sprintf("%.1f", s.Speed.CurrentBatSpeedMph),
			fmt.Sprintf("%.1f", s.Speed.CeilingBatSpeedMph),
			fmt.Sprintf("%.1f", s.Speed.CurrentExitVeloMph),
			fmt.Sprintf("%.1f", s.Speed.CeilingExitVeloMph),
			strconv.Itoa(s.Quality.SwingCount),
			fmt.Sprintf("%.2f", s.Quality.BatEnergyCoverage),
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, ",")); err != nil {
			return err
		}
	}
	return nil
}
