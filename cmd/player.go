package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hitworks/swingmetrics/internal/model"
	"github.com/hitworks/swingmetrics/internal/report"
	"github.com/hitworks/swingmetrics/internal/storage"
)

var (
	playerName   string
	playerHand   string
	playerLevel  string
	playerHeight float64
	playerWeight float64
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Manage player attributes",
}

var playerSetCmd = &cobra.Command{
	Use:   "set <player-id>",
	Short: "Register or update a player's attributes",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayerSet,
}

var playerShowCmd = &cobra.Command{
	Use:   "show <player-id>",
	Short: "Show a player's attributes and stored sessions",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayerShow,
}

func init() {
	playerSetCmd.Flags().StringVar(&playerName, "name", "", "player display name")
	playerSetCmd.Flags().StringVar(&playerHand, "hand", "R", "dominant hand: R or L")
	playerSetCmd.Flags().StringVar(&playerLevel, "level", string(model.LevelHighSchool),
		"competitive level: youth, high_school, college, pro")
	playerSetCmd.Flags().Float64Var(&playerHeight, "height", 0, "height in inches (0 = unknown)")
	playerSetCmd.Flags().Float64Var(&playerWeight, "weight", 0, "weight in pounds (0 = unknown)")

	playerCmd.AddCommand(playerSetCmd)
	playerCmd.AddCommand(playerShowCmd)
}

func runPlayerSet(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	hand := model.ParseHandedness(playerHand)
	if hand == model.HandUnknown {
		return fmt.Errorf("invalid hand %q: expected R or L", playerHand)
	}
	switch model.Level(playerLevel) {
	case model.LevelYouth, model.LevelHighSchool, model.LevelCollege, model.LevelPro:
	default:
		return fmt.Errorf("invalid level %q", playerLevel)
	}

	p := model.Player{
		ID:       args[0],
		Name:     playerName,
		Hand:     hand,
		Level:    model.Level(playerLevel),
		HeightIn: playerHeight,
		WeightLb: playerWeight,
	}
	if err := db.UpsertPlayer(p); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	fmt.Printf("Player %s saved (hand=%s level=%s height=%.0fin weight=%.0flb)\n",
		p.ID, p.Hand, p.Level, p.HeightIn, p.WeightLb)
	return nil
}

func runPlayerShow(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	p, err := db.GetPlayer(args[0])
	if err != nil {
		return fmt.Errorf("lookup player: %w", err)
	}
	if p == nil {
		return fmt.Errorf("player not found: %s", args[0])
	}

	fmt.Printf("\nPlayer: %s  |  Name: %s  |  Hand: %s  |  Level: %s  |  Height: %.0fin  |  Weight: %.0flb\n\n",
		p.ID, p.Name, p.Hand, p.Level, p.HeightIn, p.WeightLb)

	sessions, err := db.ListSessions()
	if err != nil {
		return err
	}
	var own []model.SessionSummary
	for _, s := range sessions {
		if s.PlayerID == p.ID {
			own = append(own, s)
		}
	}
	if len(own) == 0 {
		fmt.Println("No stored sessions.")
		return nil
	}
	report.PrintSessionList(os.Stdout, own)
	return nil
}
