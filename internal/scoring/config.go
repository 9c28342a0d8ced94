// Package scoring turns per-swing metrics into the 4B score card: cross-swing
// aggregation, 20–80 normalization, leak classification, and the two kinetic
// projection models. All thresholds are hand-tuned domain constants carried
// as configuration; they are applied, never re-derived.
package scoring

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/hitworks/swingmetrics/internal/model"
)

// Band is a raw-metric range mapped onto the 20–80 scale.
type Band struct {
	Min float64 `koanf:"min"`
	Max float64 `koanf:"max"`
}

// ClampBounds are the physiological bat-speed limits for one competitive level.
type ClampBounds struct {
	MinMph float64 `koanf:"min_mph"`
	MaxMph float64 `koanf:"max_mph"`
}

// Config holds every tunable of the scoring engine.
type Config struct {
	Weights struct {
		Body  float64 `koanf:"body"`
		Bat   float64 `koanf:"bat"`
		Brain float64 `koanf:"brain"`
		Ball  float64 `koanf:"ball"`
	} `koanf:"weights"`

	Bands struct {
		LegsEnergy    Band `koanf:"legs_energy"`
		TorsoEnergy   Band `koanf:"torso_energy"`
		ArmsEnergy    Band `koanf:"arms_energy"`
		BatEnergy     Band `koanf:"bat_energy"`
		BatEfficiency Band `koanf:"bat_efficiency"`
		TorsoTransfer Band `koanf:"torso_transfer"`
		LegsCV        Band `koanf:"legs_cv"`
		TorsoCV       Band `koanf:"torso_cv"`
		OutputCV      Band `koanf:"output_cv"`
		TotalCV       Band `koanf:"total_cv"`
		EfficiencyCV  Band `koanf:"efficiency_cv"`
	} `koanf:"bands"`

	Leak struct {
		NoBatFraction      float64 `koanf:"no_bat_fraction"`
		LateLegsFraction   float64 `koanf:"late_legs_fraction"`
		TransferFloorPct   float64 `koanf:"transfer_floor_pct"`
		SequenceFloor      float64 `koanf:"sequence_floor"`
		SequenceClean      float64 `koanf:"sequence_clean"`
		EfficiencyCleanPct float64 `koanf:"efficiency_clean_pct"`
	} `koanf:"leak"`

	Projection struct {
		SpeedK              float64 `koanf:"speed_k"`
		TargetEfficiencyPct float64 `koanf:"target_efficiency_pct"`
		PoorEfficiencyPct   float64 `koanf:"poor_efficiency_pct"`
		ModestEfficiencyPct float64 `koanf:"modest_efficiency_pct"`
		PoorGapMph          float64 `koanf:"poor_gap_mph"`
		ModestGapMph        float64 `koanf:"modest_gap_mph"`

		ExitVeloSlope     float64 `koanf:"exit_velo_slope"`
		ExitVeloIntercept float64 `koanf:"exit_velo_intercept"`
		ExitVeloMinMph    float64 `koanf:"exit_velo_min_mph"`
		ExitVeloMaxMph    float64 `koanf:"exit_velo_max_mph"`

		Clamps map[string]ClampBounds `koanf:"clamps"`
	} `koanf:"projection"`

	Potential struct {
		SpeedC          float64 `koanf:"speed_c"`
		EfficiencyScale float64 `koanf:"efficiency_scale"`
		DefaultMassKg   float64 `koanf:"default_mass_kg"`
		LeverBaselineIn float64 `koanf:"lever_baseline_in"`
	} `koanf:"potential"`
}

// DefaultConfig returns the tuned production constants.
func DefaultConfig() Config {
	var c Config

	c.Weights.Body = 0.35
	c.Weights.Bat = 0.30
	c.Weights.Brain = 0.20
	c.Weights.Ball = 0.15

	c.Bands.LegsEnergy = Band{Min: 100, Max: 400}
	c.Bands.TorsoEnergy = Band{Min: 50, Max: 250}
	c.Bands.ArmsEnergy = Band{Min: 40, Max: 200}
	c.Bands.BatEnergy = Band{Min: 30, Max: 250}
	c.Bands.BatEfficiency = Band{Min: 10, Max: 50}
	c.Bands.TorsoTransfer = Band{Min: 40, Max: 120}
	c.Bands.LegsCV = Band{Min: 5, Max: 40}
	c.Bands.TorsoCV = Band{Min: 5, Max: 40}
	c.Bands.OutputCV = Band{Min: 5, Max: 40}
	c.Bands.TotalCV = Band{Min: 5, Max: 30}
	c.Bands.EfficiencyCV = Band{Min: 5, Max: 35}

	c.Leak.NoBatFraction = 0.5
	c.Leak.LateLegsFraction = 0.5
	c.Leak.TransferFloorPct = 50
	c.Leak.SequenceFloor = 0.4
	c.Leak.SequenceClean = 0.7
	c.Leak.EfficiencyCleanPct = 30

	c.Projection.SpeedK = 5.0
	c.Projection.TargetEfficiencyPct = 40
	c.Projection.PoorEfficiencyPct = 30
	c.Projection.ModestEfficiencyPct = 45
	c.Projection.PoorGapMph = 10
	c.Projection.ModestGapMph = 6
	c.Projection.ExitVeloSlope = 1.25
	c.Projection.ExitVeloIntercept = 5
	c.Projection.ExitVeloMinMph = 55
	c.Projection.ExitVeloMaxMph = 120
	c.Projection.Clamps = map[string]ClampBounds{
		string(model.LevelYouth):      {MinMph: 40, MaxMph: 70},
		string(model.LevelHighSchool): {MinMph: 50, MaxMph: 85},
		string(model.LevelCollege):    {MinMph: 60, MaxMph: 95},
		string(model.LevelPro):        {MinMph: 65, MaxMph: 100},
	}

	c.Potential.SpeedC = 60
	c.Potential.EfficiencyScale = 2.0
	c.Potential.DefaultMassKg = 75
	c.Potential.LeverBaselineIn = 68

	return c
}

// LoadConfig layers defaults, an optional YAML file (SWINGMETRICS_CONFIG),
// and SWINGMETRICS_-prefixed environment variables, low to high precedence.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")
	if path := os.Getenv("SWINGMETRICS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	envProvider := env.Provider("SWINGMETRICS_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "SWINGMETRICS_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, fmt.Errorf("load env config: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Weights.Body+cfg.Weights.Bat+cfg.Weights.Brain+cfg.Weights.Ball <= 0 {
		return cfg, fmt.Errorf("composite weights must sum to a positive value")
	}
	return cfg, nil
}

// clampsFor returns the level's bat-speed bounds, falling back to high school.
func (c Config) clampsFor(level model.Level) ClampBounds {
	if b, ok := c.Projection.Clamps[string(level)]; ok {
		return b
	}
	return c.Projection.Clamps[string(model.LevelHighSchool)]
}
