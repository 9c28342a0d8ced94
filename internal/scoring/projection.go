package scoring

import (
	"math"

	"github.com/hitworks/swingmetrics/internal/model"
)

const lbToKg = 0.453592

// ProjectSpeed converts delivered energy into a bat-speed estimate and a
// ceiling at the target delivery efficiency, clamped to the player's level
// bounds, then derives exit velocity via the fixed linear mapping.
func ProjectSpeed(agg Aggregates, leak model.LeakType, level model.Level, cfg Config) model.SpeedProjection {
	delivered := agg.MeanBat
	effPct := agg.MeanBatEfficiencyPct
	if !agg.HasBatEnergy {
		delivered = agg.MeanArms * (agg.MeanTorsoTransferPct / 100)
		effPct = proxyEfficiencyPct(agg)
	}

	current := cfg.Projection.SpeedK * math.Sqrt(math.Max(delivered, 0))
	ceiling := cfg.Projection.SpeedK * math.Sqrt(math.Max(agg.MeanTotal*cfg.Projection.TargetEfficiencyPct/100, 0))

	// Gap floors keep sparse or leaky captures from projecting a near-zero
	// improvement ceiling.
	switch {
	case effPct < cfg.Projection.PoorEfficiencyPct || leak == model.LeakNoBatDelivery:
		ceiling = math.Max(ceiling, current+cfg.Projection.PoorGapMph)
	case effPct < cfg.Projection.ModestEfficiencyPct:
		ceiling = math.Max(ceiling, current+cfg.Projection.ModestGapMph)
	}

	bounds := cfg.clampsFor(level)
	current = clamp(current, bounds.MinMph, bounds.MaxMph)
	ceiling = clamp(ceiling, bounds.MinMph, bounds.MaxMph)

	return model.SpeedProjection{
		CurrentBatSpeedMph: current,
		CeilingBatSpeedMph: ceiling,
		CurrentExitVeloMph: exitVelo(current, cfg),
		CeilingExitVeloMph: exitVelo(ceiling, cfg),
		EfficiencyPct:      effPct,
	}
}

func exitVelo(batSpeed float64, cfg Config) float64 {
	ev := cfg.Projection.ExitVeloSlope*batSpeed + cfg.Projection.ExitVeloIntercept
	return clamp(ev, cfg.Projection.ExitVeloMinMph, cfg.Projection.ExitVeloMaxMph)
}

// ProjectPotential is the mass- and height-normalized kinetic-potential
// ceiling model. Unknown weight/height fall back to the 75 kg / 68 in
// baselines; zero measured arm energy yields an explicit no-projection result.
func ProjectPotential(agg Aggregates, player model.Player, cfg Config) model.PotentialProjection {
	massKg := cfg.Potential.DefaultMassKg
	if player.WeightLb > 0 {
		massKg = player.WeightLb * lbToKg
	}
	lever := 1.0
	if player.HeightIn > 0 && cfg.Potential.LeverBaselineIn > 0 {
		lever = player.HeightIn / cfg.Potential.LeverBaselineIn
	}

	p := model.PotentialProjection{MassKg: massKg, LeverIndex: lever}
	if agg.MeanArms <= 0 {
		p.Warning = "no arm-energy signal; kinetic potential not projected"
		return p
	}

	eff := 0.0
	if agg.MeanTotal > 0 {
		eff = clamp(agg.MeanArms/agg.MeanTotal*cfg.Potential.EfficiencyScale, 0, 1)
	}

	p.HasProjections = true
	p.EfficiencyRatio = eff
	p.CeilingSpeedMph = cfg.Potential.SpeedC * math.Sqrt(agg.MeanArms/massKg) * lever
	p.CurrentSpeedMph = p.CeilingSpeedMph * eff
	p.GapMph = p.CeilingSpeedMph - p.CurrentSpeedMph
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
