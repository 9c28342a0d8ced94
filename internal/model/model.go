package model

// Handedness is the batter's dominant hand.
type Handedness int

const (
	HandUnknown Handedness = 0
	HandRight   Handedness = 1
	HandLeft    Handedness = 2
)

func (h Handedness) String() string {
	switch h {
	case HandRight:
		return "R"
	case HandLeft:
		return "L"
	default:
		return "?"
	}
}

// ParseHandedness maps a stored/flag string back to a Handedness.
func ParseHandedness(s string) Handedness {
	switch s {
	case "R", "r", "right":
		return HandRight
	case "L", "l", "left":
		return HandLeft
	default:
		return HandUnknown
	}
}

// Level is the player's competitive level; it selects the physiological
// clamp bounds used by the bat-speed projection.
type Level string

const (
	LevelYouth      Level = "youth"
	LevelHighSchool Level = "high_school"
	LevelCollege    Level = "college"
	LevelPro        Level = "pro"
)

// Player holds the read-only attributes the scoring engine consumes.
// HeightIn and WeightLb are 0 when unknown; the kinetic-potential model
// substitutes its baseline defaults.
type Player struct {
	ID       string
	Name     string
	Hand     Handedness
	Level    Level
	HeightIn float64
	WeightLb float64
}

// ---- Raw rows emitted by the CSV parser ----

// RawFrame is one time-sample row of a capture export: lowercase column name
// → raw string value. Missing columns read as "".
type RawFrame map[string]string

// SwingGroup is the ordered frame sequence sharing one movement id, plus the
// contact-relative analysis window selected over it. Frames are sorted by
// time ascending; Window indexes into Frames.
type SwingGroup struct {
	MovementID string
	Frames     []RawFrame
	Window     []RawFrame
}

// ---- Per-swing derived metrics ----

// MESwingMetrics are the momentum-energy metrics for a single swing.
// Energies are 95th-percentile values over the analysis window (Joules).
type MESwingMetrics struct {
	MovementID string

	LegsEnergy  float64
	TorsoEnergy float64
	ArmsEnergy  float64
	BatEnergy   float64
	TotalEnergy float64

	BatEfficiencyPct float64 // p95(bat)/p95(total) × 100
	TorsoTransferPct float64 // p95(arms)/p95(torso) × 100

	LegsPeakTimeMs float64
	ArmsPeakTimeMs float64

	HasBatEnergy bool // any in-window bat sample > 1 J
}

// IKSwingMetrics are the inverse-kinematics metrics for a single swing.
type IKSwingMetrics struct {
	MovementID string

	PelvisVelocityDeg float64 // peak |angular velocity|, deg/s
	TorsoVelocityDeg  float64

	XFactorDeg        float64 // max hip-shoulder separation, deg
	XFactorStretchDeg float64 // max separation rate of change, deg/s

	SequenceCorrect bool // pelvis velocity peak strictly before torso peak

	LeadKneeAngleDeg   float64 // at the contact frame
	LeadElbowAngleDeg  float64
	RearElbowAngleDeg  float64
	RearElbowExtendDeg float64 // max forward extension rate, deg/s
}

// SwingMetrics is the merged per-swing record. ME fields are always
// populated; IK fields are zero-valued unless HasKinematics is true.
// Consumers must branch on HasKinematics before reading IK fields.
type SwingMetrics struct {
	ME            MESwingMetrics
	IK            IKSwingMetrics
	HasKinematics bool
}

// ---- Scoring output ----

// DataQuality aggregates signal-quality flags over one scoring run.
type DataQuality struct {
	SwingCount          int
	HasBatEnergy        bool
	BatEnergyCoverage   float64 // fraction of swings with bat signal
	ConsistencyReliable bool    // ≥3 swings → CV statistics are meaningful
	Warnings            []string
}

// LeakType labels the dominant kinetic-chain energy-loss pattern.
type LeakType string

const (
	LeakNoBatDelivery LeakType = "no_bat_delivery"
	LeakLateLegs      LeakType = "late_legs"
	LeakTorsoBypass   LeakType = "torso_bypass"
	LeakEarlyArms     LeakType = "early_arms"
	LeakCleanTransfer LeakType = "clean_transfer"
	LeakUnknown       LeakType = "unknown"
)

// LeakResult carries the classified leak plus its fixed presentation strings.
type LeakResult struct {
	Type     LeakType
	Caption  string
	Training string
}

// SpeedProjection is the delivery-efficiency bat-speed projection, clamped to
// the player's level bounds.
type SpeedProjection struct {
	CurrentBatSpeedMph float64
	CeilingBatSpeedMph float64
	CurrentExitVeloMph float64
	CeilingExitVeloMph float64
	EfficiencyPct      float64
}

// PotentialProjection is the mass- and height-normalized kinetic-potential
// ceiling model. HasProjections is false (with Warning set) when no arm
// energy was measured.
type PotentialProjection struct {
	HasProjections  bool
	CeilingSpeedMph float64
	CurrentSpeedMph float64
	GapMph          float64 // mph left on the table
	EfficiencyRatio float64 // [0,1]
	MassKg          float64
	LeverIndex      float64
	Warning         string
}

// ScoreValue pairs a 20–80 score with its qualitative grade band.
type ScoreValue struct {
	Score int
	Grade string
}

// AggregateScore is the terminal output of one scoring run, persisted
// verbatim by the storage layer.
type AggregateScore struct {
	PlayerID string

	Brain ScoreValue
	Body  ScoreValue
	Bat   ScoreValue
	Ball  ScoreValue

	Composite ScoreValue

	// Flow components feeding Body/Bat.
	GroundFlow int
	CoreFlow   int
	UpperFlow  int

	RawMetrics map[string]float64

	Leak      LeakResult
	Speed     SpeedProjection
	Potential PotentialProjection

	Quality DataQuality
}

// SessionRecord is an AggregateScore as stored: id and capture date are
// assigned by the persistence layer, not the engine.
type SessionRecord struct {
	SessionID string
	PlayerID  string
	CreatedAt string
	Score     AggregateScore
}

// SessionSummary is a lightweight session record for list commands.
type SessionSummary struct {
	SessionID  string
	PlayerID   string
	CreatedAt  string
	Composite  int
	Grade      string
	LeakType   LeakType
	SwingCount int
}

// FallbackScores is the pre-aggregated payload accepted when no CSV sources
// are available for a session.
type FallbackScores struct {
	Brain      int `json:"brain"`
	Body       int `json:"body"`
	Bat        int `json:"bat"`
	Ball       int `json:"ball"`
	GroundFlow int `json:"groundFlow"`
	CoreFlow   int `json:"coreFlow"`
	UpperFlow  int `json:"upperFlow"`
	SwingCount int `json:"swingCount"`
}
