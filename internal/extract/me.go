// Package extract derives per-swing metrics from a segmented analysis window:
// momentum-energy (required) and inverse-kinematics (optional enrichment).
package extract

import (
	"math"
	"sort"

	"github.com/hitworks/swingmetrics/internal/model"
	"github.com/hitworks/swingmetrics/internal/segment"
)

// Momentum-energy export columns.
const (
	fieldLegsEnergy     = "legs_energy"
	fieldTorsoEnergy    = "torso_energy"
	fieldArmsEnergy     = "arms_energy"
	fieldLeftArmEnergy  = "left_arm_energy"
	fieldRightArmEnergy = "right_arm_energy"
	fieldBatEnergy      = "bat_energy"
	fieldTotalEnergy    = "total_energy"
)

const (
	// batSanityMax excludes implausible bat-energy spikes from the p95 sample.
	batSanityMax = 1000.0
	// batSignalMin separates genuine barrel-energy signal from sensor noise.
	batSignalMin = 1.0
)

// MEFromGroup computes momentum-energy metrics over the group's analysis
// window. Each energy channel reduces to its 95th percentile, a robust peak
// estimate that resists single-frame sensor noise.
func MEFromGroup(g model.SwingGroup) model.MESwingMetrics {
	var legs, torso, arms, bat, total []float64
	hasBat := false

	for _, f := range g.Window {
		legs = append(legs, f.Float(fieldLegsEnergy))
		torso = append(torso, f.Float(fieldTorsoEnergy))
		arms = append(arms, armsSample(f))
		tot := f.Float(fieldTotalEnergy)
		total = append(total, tot)

		// Bat energy is only trusted when non-negative, within the frame's
		// total, and under the sanity bound.
		b := f.Float(fieldBatEnergy)
		if b >= 0 && b <= tot && b < batSanityMax {
			bat = append(bat, b)
			if b > batSignalMin {
				hasBat = true
			}
		}
	}

	m := model.MESwingMetrics{
		MovementID:   g.MovementID,
		LegsEnergy:   percentile95(legs),
		TorsoEnergy:  percentile95(torso),
		ArmsEnergy:   percentile95(arms),
		BatEnergy:    percentile95(bat),
		TotalEnergy:  percentile95(total),
		HasBatEnergy: hasBat,
	}

	if m.TotalEnergy > 0 {
		m.BatEfficiencyPct = m.BatEnergy / m.TotalEnergy * 100
	}
	if m.TorsoEnergy > 0 {
		m.TorsoTransferPct = m.ArmsEnergy / m.TorsoEnergy * 100
	}

	m.LegsPeakTimeMs = peakTimeMs(g.Window, legs)
	m.ArmsPeakTimeMs = peakTimeMs(g.Window, arms)
	return m
}

// armsSample returns the frame's arm energy: the combined field when present
// and positive, else left + right.
func armsSample(f model.RawFrame) float64 {
	if v := f.Float(fieldArmsEnergy); v > 0 {
		return v
	}
	return f.Float(fieldLeftArmEnergy) + f.Float(fieldRightArmEnergy)
}

// peakTimeMs returns the time (ms) of the frame holding the channel maximum.
func peakTimeMs(window []model.RawFrame, vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	peak := 0
	for i, v := range vals {
		if v > vals[peak] {
			peak = i
		}
	}
	return window[peak].Float(segment.FieldTime) * 1000
}

// percentile95 returns the 95th percentile (nearest rank) of vals.
func percentile95(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)
	idx := int(math.Round(0.95 * float64(n-1)))
	return sorted[idx]
}
