package scoring

import (
	"math"
	"testing"

	"github.com/hitworks/swingmetrics/internal/model"
)

// steadySwing is the reference swing used across scoring tests: strong legs,
// healthy transfer, real bat signal at 40% efficiency.
func steadySwing() model.SwingMetrics {
	return model.SwingMetrics{
		ME: model.MESwingMetrics{
			LegsEnergy:       300,
			TorsoEnergy:      150,
			ArmsEnergy:       120,
			BatEnergy:        200,
			TotalEnergy:      500,
			BatEfficiencyPct: 40,
			TorsoTransferPct: 80,
			HasBatEnergy:     true,
		},
	}
}

func steadySwings(n int) []model.SwingMetrics {
	out := make([]model.SwingMetrics, n)
	for i := range out {
		out[i] = steadySwing()
	}
	return out
}

func TestTo2080Bounds(t *testing.T) {
	band := Band{Min: 100, Max: 400}
	for _, v := range []float64{-1e9, -1, 0, 100, 250, 400, 1e9, math.MaxFloat64} {
		got := to2080(v, band, false)
		if got < 20 || got > 80 {
			t.Errorf("to2080(%v) = %v, outside [20,80]", v, got)
		}
		inv := to2080(v, band, true)
		if inv < 20 || inv > 80 {
			t.Errorf("to2080(%v, inverted) = %v, outside [20,80]", v, inv)
		}
	}
	if got := to2080(100, band, false); got != 20 {
		t.Errorf("band minimum must map to 20, got %v", got)
	}
	if got := to2080(400, band, false); got != 80 {
		t.Errorf("band maximum must map to 80, got %v", got)
	}
	if got := to2080(400, band, true); got != 20 {
		t.Errorf("inverted band maximum must map to 20, got %v", got)
	}
}

func TestTo2080DegenerateBand(t *testing.T) {
	if got := to2080(123, Band{Min: 50, Max: 50}, false); got != 50 {
		t.Errorf("zero-span band must yield neutral 50, got %v", got)
	}
}

func TestAggregatesTransferIsRatioOfMeans(t *testing.T) {
	// Torso 100/200, arms 60/180: ratio of means is 80%, not the 75% a
	// mean-of-ratios would give.
	swings := []model.SwingMetrics{
		{ME: model.MESwingMetrics{TorsoEnergy: 100, ArmsEnergy: 60}},
		{ME: model.MESwingMetrics{TorsoEnergy: 200, ArmsEnergy: 180}},
	}
	agg := ComputeAggregates(swings)
	if !almostEqual(agg.MeanTorsoTransferPct, 80) {
		t.Errorf("MeanTorsoTransferPct = %v, want 80", agg.MeanTorsoTransferPct)
	}
}

func TestAggregatesOutputCVFallsBackToArms(t *testing.T) {
	swings := []model.SwingMetrics{
		{ME: model.MESwingMetrics{ArmsEnergy: 100}},
		{ME: model.MESwingMetrics{ArmsEnergy: 200}},
	}
	agg := ComputeAggregates(swings)
	if agg.HasBatEnergy {
		t.Fatal("no swing carries bat signal")
	}
	if agg.OutputCV == 0 {
		t.Error("without bat signal, output consistency must come from arm energy")
	}
}

func TestAggregatesNeutralSequencingWithoutKinematics(t *testing.T) {
	agg := ComputeAggregates(steadySwings(5))
	if agg.IKCoverage != 0 {
		t.Fatalf("IKCoverage = %v, want 0", agg.IKCoverage)
	}
	if agg.SequenceFraction != neutralSequenceFraction {
		t.Errorf("SequenceFraction = %v, want neutral %v", agg.SequenceFraction, neutralSequenceFraction)
	}
}

func TestAggregatesSequencingOverCoveredSwings(t *testing.T) {
	swings := steadySwings(4)
	swings[0].HasKinematics = true
	swings[0].IK = model.IKSwingMetrics{SequenceCorrect: true, PelvisVelocityDeg: 600}
	swings[1].HasKinematics = true
	swings[1].IK = model.IKSwingMetrics{SequenceCorrect: false, PelvisVelocityDeg: 400}

	agg := ComputeAggregates(swings)
	if !almostEqual(agg.SequenceFraction, 0.5) {
		t.Errorf("SequenceFraction = %v, want 0.5 over the 2 covered swings", agg.SequenceFraction)
	}
	if !almostEqual(agg.IKCoverage, 0.5) {
		t.Errorf("IKCoverage = %v, want 0.5", agg.IKCoverage)
	}
	if !almostEqual(agg.MeanPelvisVelocity, 500) {
		t.Errorf("MeanPelvisVelocity = %v, want 500 (covered swings only)", agg.MeanPelvisVelocity)
	}
}

func TestScoresNeutralConsistencyUnderThreeSwings(t *testing.T) {
	agg := ComputeAggregates(steadySwings(2))
	brain, _, _, ball, _, _, _, _ := ComputeScores(agg, DefaultConfig())
	if brain.Score != 50 || ball.Score != 50 {
		t.Errorf("Brain/Ball = %d/%d, want neutral 50 under %d swings",
			brain.Score, ball.Score, minSwingsForCV)
	}
}

func TestScoresZeroVarianceSession(t *testing.T) {
	agg := ComputeAggregates(steadySwings(5))
	brain, body, bat, ball, composite, ground, core, upper := ComputeScores(agg, DefaultConfig())

	if brain.Score != 80 || ball.Score != 80 {
		t.Errorf("identical swings must score perfect consistency: Brain=%d Ball=%d", brain.Score, ball.Score)
	}
	if ground != 60 {
		t.Errorf("ground flow = %d, want 60", ground)
	}
	if core != 50 {
		t.Errorf("core flow = %d, want 50", core)
	}
	if upper != 50 {
		t.Errorf("upper flow = %d, want 50", upper)
	}
	if body.Score != 55 {
		t.Errorf("Body = %d, want 55", body.Score)
	}
	if bat.Score != 60 {
		t.Errorf("Bat = %d, want 60", bat.Score)
	}
	if composite.Score != 65 {
		t.Errorf("composite = %d, want 65", composite.Score)
	}
}

func TestCompositeWeightedIdentity(t *testing.T) {
	cfg := DefaultConfig()
	agg := ComputeAggregates(steadySwings(5))
	brain, body, bat, ball, composite, _, _, _ := ComputeScores(agg, cfg)

	want := roundScore(float64(body.Score)*cfg.Weights.Body +
		float64(bat.Score)*cfg.Weights.Bat +
		float64(brain.Score)*cfg.Weights.Brain +
		float64(ball.Score)*cfg.Weights.Ball)
	if composite.Score != want {
		t.Errorf("composite = %d, want weighted %d", composite.Score, want)
	}
}

func TestGradeFor(t *testing.T) {
	cases := []struct {
		score int
		grade string
	}{
		{80, "Plus-Plus"}, {70, "Plus-Plus"},
		{69, "Plus"}, {60, "Plus"},
		{59, "Above Average"}, {55, "Above Average"},
		{54, "Average"}, {45, "Average"},
		{44, "Below Average"}, {40, "Below Average"},
		{39, "Fringe"}, {30, "Fringe"},
		{29, "Poor"}, {20, "Poor"},
	}
	for _, c := range cases {
		if got := GradeFor(c.score); got != c.grade {
			t.Errorf("GradeFor(%d) = %q, want %q", c.score, got, c.grade)
		}
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	// Population stdev of {90, 110} is 10 around a mean of 100.
	if got := coefficientOfVariation([]float64{90, 110}); !almostEqual(got, 10) {
		t.Errorf("CV = %v, want 10", got)
	}
	if got := coefficientOfVariation(nil); got != 0 {
		t.Errorf("CV of empty sample = %v, want 0", got)
	}
	if got := coefficientOfVariation([]float64{5, 5, 5}); got != 0 {
		t.Errorf("CV of constant sample = %v, want 0", got)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
