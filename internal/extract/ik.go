package extract

import (
	"math"

	"github.com/hitworks/swingmetrics/internal/model"
	"github.com/hitworks/swingmetrics/internal/segment"
)

// Inverse-kinematics export columns. Rotations are radians; joint angles are
// already degrees.
const (
	fieldPelvisRotation  = "pelvis_rotation"
	fieldTorsoRotation   = "torso_rotation"
	fieldLeftKneeAngle   = "left_knee_angle"
	fieldRightKneeAngle  = "right_knee_angle"
	fieldLeftElbowAngle  = "left_elbow_angle"
	fieldRightElbowAngle = "right_elbow_angle"
)

const radToDeg = 180 / math.Pi

// IKFromGroup computes inverse-kinematics metrics over the group's analysis
// window. Lead vs. rear side is selected by the batter's dominant hand
// (right-handed → left side leads).
func IKFromGroup(g model.SwingGroup, hand model.Handedness) model.IKSwingMetrics {
	times := make([]float64, len(g.Window))
	pelvis := make([]float64, len(g.Window))
	torso := make([]float64, len(g.Window))
	for i, f := range g.Window {
		times[i] = f.Float(segment.FieldTime)
		pelvis[i] = f.Float(fieldPelvisRotation) * radToDeg
		torso[i] = f.Float(fieldTorsoRotation) * radToDeg
	}

	pelvisVel := diffQuotient(pelvis, times)
	torsoVel := diffQuotient(torso, times)
	pelvisPeakV, pelvisPeakIdx := peakAbs(pelvisVel)
	torsoPeakV, torsoPeakIdx := peakAbs(torsoVel)

	// Hip-shoulder separation per frame, and its own rate of change.
	xfactor := make([]float64, len(g.Window))
	for i := range g.Window {
		xfactor[i] = math.Abs(torso[i] - pelvis[i])
	}
	xfactorVel := diffQuotient(xfactor, times)
	xfactorPeak, _ := peakMax(xfactor)
	stretchRate, _ := peakMax(xfactorVel)

	m := model.IKSwingMetrics{
		MovementID:        g.MovementID,
		PelvisVelocityDeg: pelvisPeakV,
		TorsoVelocityDeg:  torsoPeakV,
		XFactorDeg:        xfactorPeak,
		XFactorStretchDeg: stretchRate,
		// Proper proximal-to-distal order: pelvis fires strictly first.
		SequenceCorrect: len(pelvisVel) > 0 && pelvisPeakIdx < torsoPeakIdx,
	}

	leadKnee, leadElbow, rearElbow := sideFields(hand)
	contact := contactFrame(g.Window)
	m.LeadKneeAngleDeg = contact.Float(leadKnee)
	m.LeadElbowAngleDeg = contact.Float(leadElbow)
	m.RearElbowAngleDeg = contact.Float(rearElbow)

	rear := make([]float64, len(g.Window))
	for i, f := range g.Window {
		rear[i] = f.Float(rearElbow)
	}
	m.RearElbowExtendDeg, _ = peakMax(diffQuotient(rear, times))
	return m
}

// sideFields maps handedness onto lead-knee, lead-elbow, rear-elbow columns.
func sideFields(hand model.Handedness) (leadKnee, leadElbow, rearElbow string) {
	if hand == model.HandLeft {
		return fieldRightKneeAngle, fieldRightElbowAngle, fieldLeftElbowAngle
	}
	return fieldLeftKneeAngle, fieldLeftElbowAngle, fieldRightElbowAngle
}

// contactFrame returns the single frame nearest contact: marker closest to
// zero when the export carries one, else the last window frame.
func contactFrame(window []model.RawFrame) model.RawFrame {
	if len(window) == 0 {
		return model.RawFrame{}
	}
	if !window[0].Has(segment.FieldTimeFromContact) {
		return window[len(window)-1]
	}
	best := 0
	bestDist := math.Abs(window[0].Float(segment.FieldTimeFromContact))
	for i, f := range window {
		d := math.Abs(f.Float(segment.FieldTimeFromContact))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return window[best]
}

// diffQuotient returns forward difference quotients of vals over times.
// Pairs with a non-positive time step contribute zero.
func diffQuotient(vals, times []float64) []float64 {
	if len(vals) < 2 {
		return nil
	}
	out := make([]float64, len(vals)-1)
	for i := 0; i < len(vals)-1; i++ {
		dt := times[i+1] - times[i]
		if dt <= 0 {
			continue
		}
		out[i] = (vals[i+1] - vals[i]) / dt
	}
	return out
}

// peakAbs returns the maximum absolute value and its index.
func peakAbs(vals []float64) (float64, int) {
	best, bestIdx := 0.0, 0
	for i, v := range vals {
		if math.Abs(v) > best {
			best, bestIdx = math.Abs(v), i
		}
	}
	return best, bestIdx
}

// peakMax returns the maximum value and its index (0,0 on empty input).
func peakMax(vals []float64) (float64, int) {
	if len(vals) == 0 {
		return 0, 0
	}
	best, bestIdx := vals[0], 0
	for i, v := range vals {
		if v > best {
			best, bestIdx = v, i
		}
	}
	return best, bestIdx
}
