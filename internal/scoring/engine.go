package scoring

import (
	"fmt"

	"github.com/hitworks/swingmetrics/internal/extract"
	"github.com/hitworks/swingmetrics/internal/model"
	"github.com/hitworks/swingmetrics/internal/parser"
	"github.com/hitworks/swingmetrics/internal/segment"
)

// Resource family names accepted in Input.Sources.
const (
	ResourceEnergy     = "energy"
	ResourceKinematics = "kinematics"
)

// Fetcher supplies raw bytes for a CSV resource locator.
type Fetcher interface {
	Fetch(locator string) ([]byte, error)
}

// Input is one scoring request: per-family CSV source locators, or a
// pre-aggregated fallback payload when no captures exist.
type Input struct {
	Player   model.Player
	Sources  map[string][]string
	Fallback *model.FallbackScores
}

// Engine runs the full scoring pipeline. It holds no mutable state across
// runs; every invocation builds its entities fresh from the inputs.
type Engine struct {
	fetcher Fetcher
	cfg     Config
}

// NewEngine creates an engine over the given resource fetcher and config.
func NewEngine(f Fetcher, cfg Config) *Engine {
	return &Engine{fetcher: f, cfg: cfg}
}

// Score executes one scoring run. The energy resource is required — a missing
// or unfetchable one fails the run. The kinematics resource only enriches;
// its failures degrade data quality but never block.
func (e *Engine) Score(in Input) (*model.AggregateScore, error) {
	meSources := in.Sources[ResourceEnergy]
	if len(meSources) == 0 {
		if in.Fallback != nil {
			return e.scoreFromFallback(in.Player, *in.Fallback), nil
		}
		return nil, fmt.Errorf("no energy capture sources and no fallback payload")
	}

	meRows, err := e.loadRows(meSources)
	if err != nil {
		return nil, fmt.Errorf("energy resource: %w", err)
	}
	if len(meRows) == 0 {
		return nil, fmt.Errorf("energy resource: no data rows")
	}

	meGroups := segment.Group(meRows, segment.MinFramesME)
	if len(meGroups) == 0 {
		return nil, fmt.Errorf("energy resource: no analyzable swings")
	}

	var warnings []string

	// Optional kinematics: per-source fetch failures are recoverable.
	ikByID := make(map[string]model.IKSwingMetrics)
	for _, loc := range in.Sources[ResourceKinematics] {
		rows, err := e.loadRows([]string{loc})
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("kinematics resource unavailable: %v", err))
			continue
		}
		for _, g := range segment.Group(rows, segment.MinFramesIK) {
			ikByID[g.MovementID] = extract.IKFromGroup(g, in.Player.Hand)
		}
	}

	swings := make([]model.SwingMetrics, 0, len(meGroups))
	for _, g := range meGroups {
		sm := model.SwingMetrics{ME: extract.MEFromGroup(g)}
		if ik, ok := ikByID[g.MovementID]; ok {
			sm.IK = ik
			sm.HasKinematics = true
		}
		swings = append(swings, sm)
	}

	agg := ComputeAggregates(swings)

	if agg.IKCoverage == 0 {
		warnings = append(warnings, "no kinematics coverage; sequencing metrics defaulted")
	}
	if !agg.HasBatEnergy {
		warnings = append(warnings, "no bat-energy signal; delivery scored from transfer proxy")
	}
	if agg.SwingCount < minSwingsForCV {
		warnings = append(warnings, "fewer than 3 swings; consistency scores defaulted to 50")
	}
	if in.Player.WeightLb <= 0 {
		warnings = append(warnings, "player weight unknown; kinetic potential uses 75 kg default")
	}
	if in.Player.HeightIn <= 0 {
		warnings = append(warnings, "player height unknown; kinetic potential uses baseline lever")
	}

	brain, body, bat, ball, composite, ground, core, upper := ComputeScores(agg, e.cfg)

	leak := ClassifyLeak(LeakInputs{
		NoBatFraction:        agg.NoBatFraction,
		LateLegsFraction:     agg.LateLegsFraction,
		MeanTorsoEnergy:      agg.MeanTorso,
		MeanTorsoTransferPct: agg.MeanTorsoTransferPct,
		SequenceFraction:     agg.SequenceFraction,
		MeanBatEfficiencyPct: agg.MeanBatEfficiencyPct,
	}, e.cfg)

	result := &model.AggregateScore{
		PlayerID:   in.Player.ID,
		Brain:      brain,
		Body:       body,
		Bat:        bat,
		Ball:       ball,
		Composite:  composite,
		GroundFlow: ground,
		CoreFlow:   core,
		UpperFlow:  upper,
		RawMetrics: rawMetrics(agg),
		Leak:       leak,
		Speed:      ProjectSpeed(agg, leak.Type, in.Player.Level, e.cfg),
		Potential:  ProjectPotential(agg, in.Player, e.cfg),
		Quality: model.DataQuality{
			SwingCount:          agg.SwingCount,
			HasBatEnergy:        agg.HasBatEnergy,
			BatEnergyCoverage:   agg.BatCoverage,
			ConsistencyReliable: agg.SwingCount >= minSwingsForCV,
			Warnings:            warnings,
		},
	}
	return result, nil
}

// loadRows fetches, decodes, and parses every locator, concatenating rows
// across per-movement exports of the same logical resource.
func (e *Engine) loadRows(locators []string) ([]model.RawFrame, error) {
	var rows []model.RawFrame
	for _, loc := range locators {
		raw, err := e.fetcher.Fetch(loc)
		if err != nil {
			return nil, err
		}
		text, err := parser.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", loc, err)
		}
		rows = append(rows, parser.ParseRows(text)...)
	}
	return rows, nil
}

// scoreFromFallback packages a caller-supplied pre-aggregated payload into a
// complete result. No capture data exists, so leak and projections carry
// their explicit empty forms.
func (e *Engine) scoreFromFallback(player model.Player, fb model.FallbackScores) *model.AggregateScore {
	comp := float64(fb.Body)*e.cfg.Weights.Body +
		float64(fb.Bat)*e.cfg.Weights.Bat +
		float64(fb.Brain)*e.cfg.Weights.Brain +
		float64(fb.Ball)*e.cfg.Weights.Ball

	return &model.AggregateScore{
		PlayerID:   player.ID,
		Brain:      scoreValue(fb.Brain),
		Body:       scoreValue(fb.Body),
		Bat:        scoreValue(fb.Bat),
		Ball:       scoreValue(fb.Ball),
		Composite:  scoreValue(roundScore(comp)),
		GroundFlow: fb.GroundFlow,
		CoreFlow:   fb.CoreFlow,
		UpperFlow:  fb.UpperFlow,
		RawMetrics: map[string]float64{},
		Leak:       leakResult(model.LeakUnknown),
		Potential: model.PotentialProjection{
			Warning: "scored from fallback payload; no capture data",
		},
		Quality: model.DataQuality{
			SwingCount:          fb.SwingCount,
			ConsistencyReliable: fb.SwingCount >= minSwingsForCV,
			Warnings:            []string{"scored from pre-aggregated fallback payload"},
		},
	}
}

func rawMetrics(agg Aggregates) map[string]float64 {
	return map[string]float64{
		"legs_energy":        agg.MeanLegs,
		"torso_energy":       agg.MeanTorso,
		"arms_energy":        agg.MeanArms,
		"bat_energy":         agg.MeanBat,
		"total_energy":       agg.MeanTotal,
		"bat_efficiency_pct": agg.MeanBatEfficiencyPct,
		"torso_transfer_pct": agg.MeanTorsoTransferPct,
		"legs_cv":            agg.LegsCV,
		"torso_cv":           agg.TorsoCV,
		"output_cv":          agg.OutputCV,
		"total_cv":           agg.TotalCV,
		"efficiency_cv":      agg.EfficiencyCV,
		"no_bat_fraction":    agg.NoBatFraction,
		"late_legs_fraction": agg.LateLegsFraction,
		"sequence_fraction":  agg.SequenceFraction,
		"ik_coverage":        agg.IKCoverage,
		"pelvis_velocity":    agg.MeanPelvisVelocity,
		"torso_velocity":     agg.MeanTorsoVelocity,
		"x_factor":           agg.MeanXFactor,
		"x_factor_stretch":   agg.MeanXFactorStretch,
	}
}
