package scoring

import "github.com/hitworks/swingmetrics/internal/model"

// LeakInputs are the five cross-swing aggregates the classifier reads.
// Classification is a pure function of these values.
type LeakInputs struct {
	NoBatFraction        float64
	LateLegsFraction     float64
	MeanTorsoEnergy      float64
	MeanTorsoTransferPct float64
	SequenceFraction     float64
	MeanBatEfficiencyPct float64
}

// leakText carries the fixed caption and training directive per leak type.
var leakText = map[model.LeakType]struct{ caption, training string }{
	model.LeakNoBatDelivery: {
		"Energy never reaches the barrel.",
		"Drill barrel connection: top-hand release swings and heavy-bat contact work.",
	},
	model.LeakLateLegs: {
		"Upper body fires before the lower body.",
		"Rebuild the ground-up trigger: stride-and-hold drills, lower-half initiation cues.",
	},
	model.LeakTorsoBypass: {
		"The core fails to relay leg energy into the arms.",
		"Train trunk coupling: med-ball rotational throws with a deliberate hip-first move.",
	},
	model.LeakEarlyArms: {
		"Arms start the swing ahead of the pelvis.",
		"Sequence resets: slow-motion separation swings holding pelvis lead.",
	},
	model.LeakCleanTransfer: {
		"Energy flows through the chain without a material leak.",
		"Maintain the pattern; progress load and bat speed work.",
	},
	model.LeakUnknown: {
		"Insufficient signal to classify confidently.",
		"Capture more swings with full sensor coverage before prescribing work.",
	},
}

// ClassifyLeak runs the ordered rule cascade over the aggregates; the first
// matching rule wins.
func ClassifyLeak(in LeakInputs, cfg Config) model.LeakResult {
	switch {
	case in.NoBatFraction > cfg.Leak.NoBatFraction:
		return leakResult(model.LeakNoBatDelivery)
	case in.LateLegsFraction > cfg.Leak.LateLegsFraction:
		return leakResult(model.LeakLateLegs)
	case in.MeanTorsoEnergy > 0 && in.MeanTorsoTransferPct < cfg.Leak.TransferFloorPct:
		return leakResult(model.LeakTorsoBypass)
	case in.SequenceFraction < cfg.Leak.SequenceFloor:
		return leakResult(model.LeakEarlyArms)
	case in.SequenceFraction > cfg.Leak.SequenceClean && in.MeanBatEfficiencyPct > cfg.Leak.EfficiencyCleanPct:
		return leakResult(model.LeakCleanTransfer)
	default:
		return leakResult(model.LeakUnknown)
	}
}

func leakResult(t model.LeakType) model.LeakResult {
	txt := leakText[t]
	return model.LeakResult{Type: t, Caption: txt.caption, Training: txt.training}
}
