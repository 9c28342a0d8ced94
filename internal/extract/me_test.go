package extract

import (
	"fmt"
	"math"
	"testing"

	"github.com/hitworks/swingmetrics/internal/model"
)

func meGroup(frames ...model.RawFrame) model.SwingGroup {
	return model.SwingGroup{MovementID: "sw1", Frames: frames, Window: frames}
}

func meFrame(time, legs, torso, arms, bat, total float64) model.RawFrame {
	return model.RawFrame{
		"time":         fmt.Sprintf("%g", time),
		"legs_energy":  fmt.Sprintf("%g", legs),
		"torso_energy": fmt.Sprintf("%g", torso),
		"arms_energy":  fmt.Sprintf("%g", arms),
		"bat_energy":   fmt.Sprintf("%g", bat),
		"total_energy": fmt.Sprintf("%g", total),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMEConstantChannels(t *testing.T) {
	g := meGroup(
		meFrame(0.0, 300, 150, 120, 200, 500),
		meFrame(0.1, 300, 150, 120, 200, 500),
		meFrame(0.2, 300, 150, 120, 200, 500),
	)
	m := MEFromGroup(g)

	if m.LegsEnergy != 300 || m.TorsoEnergy != 150 || m.ArmsEnergy != 120 || m.BatEnergy != 200 {
		t.Errorf("constant channels must report their value: %+v", m)
	}
	if !almostEqual(m.BatEfficiencyPct, 40) {
		t.Errorf("BatEfficiencyPct = %v, want 40", m.BatEfficiencyPct)
	}
	if !almostEqual(m.TorsoTransferPct, 80) {
		t.Errorf("TorsoTransferPct = %v, want 80", m.TorsoTransferPct)
	}
	if !m.HasBatEnergy {
		t.Error("bat energy well above the noise floor must set HasBatEnergy")
	}
}

func TestMEPercentileResistsSpike(t *testing.T) {
	// 20 steady frames and one absurd spike; p95 must stay near the plateau.
	frames := make([]model.RawFrame, 0, 21)
	for i := 0; i < 20; i++ {
		frames = append(frames, meFrame(float64(i)*0.01, 100, 50, 40, 30, 250))
	}
	frames = append(frames, meFrame(0.21, 99999, 50, 40, 30, 250))
	m := MEFromGroup(meGroup(frames...))

	if m.LegsEnergy != 100 {
		t.Errorf("p95 must discard a single-frame spike, got %v", m.LegsEnergy)
	}
}

func TestMEBatValidation(t *testing.T) {
	g := meGroup(
		meFrame(0.0, 10, 10, 10, -5, 100),   // negative: reject
		meFrame(0.1, 10, 10, 10, 150, 100),  // exceeds frame total: reject
		meFrame(0.2, 10, 10, 10, 1500, 100), // over sanity bound: reject
		meFrame(0.3, 10, 10, 10, 0.5, 100),  // valid but noise-level
		meFrame(0.4, 10, 10, 10, 0.5, 100),
	)
	m := MEFromGroup(g)

	if m.BatEnergy != 0.5 {
		t.Errorf("only valid samples enter the percentile: got %v", m.BatEnergy)
	}
	if m.HasBatEnergy {
		t.Error("noise-level bat samples must not set HasBatEnergy")
	}
}

func TestMEArmsFallbackToSides(t *testing.T) {
	f := model.RawFrame{
		"time":             "0",
		"arms_energy":      "0",
		"left_arm_energy":  "30",
		"right_arm_energy": "25",
		"total_energy":     "100",
	}
	m := MEFromGroup(meGroup(f, f, f))
	if m.ArmsEnergy != 55 {
		t.Errorf("arms should sum left+right when the combined field is empty: got %v", m.ArmsEnergy)
	}
}

func TestMEPeakTiming(t *testing.T) {
	g := meGroup(
		meFrame(0.00, 100, 0, 10, 0, 200),
		meFrame(0.05, 400, 0, 20, 0, 500), // legs peak here
		meFrame(0.10, 200, 0, 90, 0, 300), // arms peak here
	)
	m := MEFromGroup(g)

	if m.LegsPeakTimeMs != 50 {
		t.Errorf("LegsPeakTimeMs = %v, want 50", m.LegsPeakTimeMs)
	}
	if m.ArmsPeakTimeMs != 100 {
		t.Errorf("ArmsPeakTimeMs = %v, want 100", m.ArmsPeakTimeMs)
	}
}

func TestMEZeroTotalNoRatios(t *testing.T) {
	g := meGroup(
		meFrame(0, 10, 0, 5, 0, 0),
		meFrame(0.1, 10, 0, 5, 0, 0),
	)
	m := MEFromGroup(g)
	if m.BatEfficiencyPct != 0 || m.TorsoTransferPct != 0 {
		t.Errorf("zero denominators must leave ratios at 0: %+v", m)
	}
}
