package scoring

import (
	"math"

	"github.com/hitworks/swingmetrics/internal/model"
)

// minSwingsForCV is the sample size below which coefficient-of-variation
// statistics are meaningless; Brain and Ball default to a neutral 50.
const minSwingsForCV = 3

// neutralSequenceFraction substitutes for the pelvis-before-torso fraction
// when no swing carries kinematics, keeping the sequencing leak rules from
// firing on absent data.
const neutralSequenceFraction = 0.5

// Aggregates are the cross-swing values every downstream stage (scores, leak
// classifier, projections) reads.
type Aggregates struct {
	SwingCount int

	MeanLegs  float64
	MeanTorso float64
	MeanArms  float64
	MeanBat   float64
	MeanTotal float64

	MeanBatEfficiencyPct float64
	MeanTorsoTransferPct float64

	LegsCV       float64
	TorsoCV      float64
	OutputCV     float64
	TotalCV      float64
	EfficiencyCV float64

	HasBatEnergy bool
	BatCoverage  float64 // fraction of swings with genuine bat signal

	NoBatFraction    float64 // fraction of swings with near-zero bat energy
	LateLegsFraction float64 // fraction where legs peaked after arms
	SequenceFraction float64 // fraction with correct pelvis→torso order
	IKCoverage       float64

	MeanPelvisVelocity float64 // over IK-covered swings
	MeanTorsoVelocity  float64
	MeanXFactor        float64
	MeanXFactorStretch float64
}

// ComputeAggregates reduces the swing set to its cross-swing aggregates.
func ComputeAggregates(swings []model.SwingMetrics) Aggregates {
	agg := Aggregates{SwingCount: len(swings)}
	if len(swings) == 0 {
		agg.SequenceFraction = neutralSequenceFraction
		return agg
	}

	var legs, torso, arms, bat, total, batEff []float64
	var effForCV []float64
	batSwings, lateLegs := 0, 0
	ikSwings, goodSeq := 0, 0
	var pelvisVel, torsoVel, xfactor, stretch float64

	for _, s := range swings {
		legs = append(legs, s.ME.LegsEnergy)
		torso = append(torso, s.ME.TorsoEnergy)
		arms = append(arms, s.ME.ArmsEnergy)
		bat = append(bat, s.ME.BatEnergy)
		total = append(total, s.ME.TotalEnergy)
		batEff = append(batEff, s.ME.BatEfficiencyPct)
		if s.ME.BatEfficiencyPct > 0 {
			effForCV = append(effForCV, s.ME.BatEfficiencyPct)
		}
		if s.ME.HasBatEnergy {
			batSwings++
		}
		if s.ME.LegsPeakTimeMs > s.ME.ArmsPeakTimeMs {
			lateLegs++
		}
		if s.HasKinematics {
			ikSwings++
			if s.IK.SequenceCorrect {
				goodSeq++
			}
			pelvisVel += s.IK.PelvisVelocityDeg
			torsoVel += s.IK.TorsoVelocityDeg
			xfactor += s.IK.XFactorDeg
			stretch += s.IK.XFactorStretchDeg
		}
	}

	n := float64(len(swings))
	agg.MeanLegs = mean(legs)
	agg.MeanTorso = mean(torso)
	agg.MeanArms = mean(arms)
	agg.MeanBat = mean(bat)
	agg.MeanTotal = mean(total)
	agg.MeanBatEfficiencyPct = mean(batEff)

	// Transfer ratio over the aggregate means, not a mean of per-swing ratios.
	if agg.MeanTorso > 0 {
		agg.MeanTorsoTransferPct = agg.MeanArms / agg.MeanTorso * 100
	}

	agg.HasBatEnergy = batSwings > 0
	agg.BatCoverage = float64(batSwings) / n
	agg.NoBatFraction = float64(len(swings)-batSwings) / n
	agg.LateLegsFraction = float64(lateLegs) / n

	agg.LegsCV = coefficientOfVariation(legs)
	agg.TorsoCV = coefficientOfVariation(torso)
	agg.TotalCV = coefficientOfVariation(total)
	agg.EfficiencyCV = coefficientOfVariation(effForCV)
	if agg.HasBatEnergy {
		agg.OutputCV = coefficientOfVariation(bat)
	} else {
		agg.OutputCV = coefficientOfVariation(arms)
	}

	agg.IKCoverage = float64(ikSwings) / n
	if ikSwings > 0 {
		agg.SequenceFraction = float64(goodSeq) / float64(ikSwings)
		agg.MeanPelvisVelocity = pelvisVel / float64(ikSwings)
		agg.MeanTorsoVelocity = torsoVel / float64(ikSwings)
		agg.MeanXFactor = xfactor / float64(ikSwings)
		agg.MeanXFactorStretch = stretch / float64(ikSwings)
	} else {
		agg.SequenceFraction = neutralSequenceFraction
	}
	return agg
}

// ComputeScores maps the aggregates onto the 4B sub-scores, flow components,
// and composite.
func ComputeScores(agg Aggregates, cfg Config) (brain, body, bat, ball, composite model.ScoreValue, ground, core, upper int) {
	ground = roundScore(to2080(agg.MeanLegs, cfg.Bands.LegsEnergy, false))
	core = roundScore((to2080(agg.MeanTorso, cfg.Bands.TorsoEnergy, false) +
		to2080(agg.MeanTorsoTransferPct, cfg.Bands.TorsoTransfer, false)) / 2)
	upper = roundScore(to2080(agg.MeanArms, cfg.Bands.ArmsEnergy, false))

	body = scoreValue(roundScore(float64(ground+core) / 2))

	if agg.HasBatEnergy {
		bat = scoreValue(roundScore((to2080(agg.MeanBat, cfg.Bands.BatEnergy, false) +
			to2080(agg.MeanArms, cfg.Bands.ArmsEnergy, false) +
			to2080(agg.MeanBatEfficiencyPct, cfg.Bands.BatEfficiency, false)) / 3))
	} else {
		// No barrel signal: score delivery off the transfer-based proxy.
		bat = scoreValue(roundScore((to2080(agg.MeanArms, cfg.Bands.ArmsEnergy, false) +
			to2080(proxyEfficiencyPct(agg), cfg.Bands.BatEfficiency, false)) / 2))
	}

	if agg.SwingCount < minSwingsForCV {
		brain = scoreValue(50)
		ball = scoreValue(50)
	} else {
		brain = scoreValue(roundScore((to2080(agg.LegsCV, cfg.Bands.LegsCV, true) +
			to2080(agg.TorsoCV, cfg.Bands.TorsoCV, true) +
			to2080(agg.OutputCV, cfg.Bands.OutputCV, true)) / 3))
		ball = scoreValue(roundScore((to2080(agg.TotalCV, cfg.Bands.TotalCV, true) +
			to2080(agg.EfficiencyCV, cfg.Bands.EfficiencyCV, true)) / 2))
	}

	comp := float64(body.Score)*cfg.Weights.Body +
		float64(bat.Score)*cfg.Weights.Bat +
		float64(brain.Score)*cfg.Weights.Brain +
		float64(ball.Score)*cfg.Weights.Ball
	composite = scoreValue(roundScore(comp))
	return
}

// proxyEfficiencyPct estimates delivery efficiency when no bat signal exists:
// arm energy discounted by the torso transfer fraction, as a percent of total.
func proxyEfficiencyPct(agg Aggregates) float64 {
	if agg.MeanTotal <= 0 {
		return 0
	}
	return agg.MeanArms * (agg.MeanTorsoTransferPct / 100) / agg.MeanTotal * 100
}

// to2080 clamps value into [band.Min, band.Max], optionally inverts
// (lower-is-better metrics), and maps affinely onto the 20–80 talent scale.
func to2080(value float64, band Band, invert bool) float64 {
	span := band.Max - band.Min
	if span <= 0 {
		return 50
	}
	ratio := (value - band.Min) / span
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	if invert {
		ratio = 1 - ratio
	}
	return 20 + ratio*60
}

func roundScore(v float64) int {
	return int(math.Round(v))
}

func scoreValue(score int) model.ScoreValue {
	return model.ScoreValue{Score: score, Grade: GradeFor(score)}
}

// GradeFor returns the qualitative grade band for a 20–80 score.
func GradeFor(score int) string {
	switch {
	case score >= 70:
		return "Plus-Plus"
	case score >= 60:
		return "Plus"
	case score >= 55:
		return "Above Average"
	case score >= 45:
		return "Average"
	case score >= 40:
		return "Below Average"
	case score >= 30:
		return "Fringe"
	default:
		return "Poor"
	}
}

// mean returns the arithmetic mean, 0 on empty input.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// coefficientOfVariation returns stdev/|mean| × 100 (population stdev),
// 0 when the mean is zero or the sample is empty.
func coefficientOfVariation(vals []float64) float64 {
	m := mean(vals)
	if len(vals) == 0 || m == 0 {
		return 0
	}
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	stdev := math.Sqrt(ss / float64(len(vals)))
	return stdev / math.Abs(m) * 100
}
