package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hitworks/swingmetrics/internal/fetch"
	"github.com/hitworks/swingmetrics/internal/model"
	"github.com/hitworks/swingmetrics/internal/report"
	"github.com/hitworks/swingmetrics/internal/scoring"
	"github.com/hitworks/swingmetrics/internal/storage"
)

var (
	scoreME       []string
	scoreIK       []string
	scoreFallback string
)

var scoreCmd = &cobra.Command{
	Use:   "score <player-id>",
	Short: "Score a capture session and store the result",
	Long: `Fetches the session's CSV exports (paths or URLs), runs the scoring
pipeline, persists the result, and prints the score card.

Examples:
  # Local per-movement exports
  swingmetrics score p123 --me session1_me.csv --me session2_me.csv --ik session1_ik.csv

  # Remote gzip-compressed exports
  swingmetrics score p123 --me https://captures.example.com/p123/me.csv.gz

  # Pre-aggregated fallback payload when no captures exist
  swingmetrics score p123 --fallback scores.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringArrayVar(&scoreME, "me", nil, "momentum-energy CSV path or URL (repeatable)")
	scoreCmd.Flags().StringArrayVar(&scoreIK, "ik", nil, "inverse-kinematics CSV path or URL (repeatable)")
	scoreCmd.Flags().StringVar(&scoreFallback, "fallback", "", "path to a pre-aggregated score JSON payload")
}

func runScore(cmd *cobra.Command, args []string) error {
	playerID := args[0]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cfg, err := scoring.LoadConfig()
	if err != nil {
		return fmt.Errorf("load scoring config: %w", err)
	}

	player, err := db.GetPlayer(playerID)
	if err != nil {
		return fmt.Errorf("lookup player: %w", err)
	}
	if player == nil {
		fmt.Fprintf(os.Stderr, "[warn] player %s not registered; using defaults (see 'swingmetrics player set')\n", playerID)
		player = &model.Player{ID: playerID, Level: model.LevelHighSchool}
	}

	input := scoring.Input{
		Player: *player,
		Sources: map[string][]string{
			scoring.ResourceEnergy:     scoreME,
			scoring.ResourceKinematics: scoreIK,
		},
	}
	if scoreFallback != "" {
		fb, err := readFallback(scoreFallback)
		if err != nil {
			return err
		}
		input.Fallback = fb
	}

	engine := scoring.NewEngine(fetch.NewClient(), cfg)
	result, err := engine.Score(input)
	if err != nil {
		return fmt.Errorf("score session: %w", err)
	}

	rec, err := db.InsertSession(*result)
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	report.PrintSession(os.Stdout, rec)
	return nil
}

func readFallback(path string) (*model.FallbackScores, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback payload: %w", err)
	}
	var fb model.FallbackScores
	if err := json.Unmarshal(data, &fb); err != nil {
		return nil, fmt.Errorf("decode fallback payload: %w", err)
	}
	return &fb, nil
}
