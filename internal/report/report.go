package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hitworks/swingmetrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintSessionHeader prints a one-line summary for a stored session.
func PrintSessionHeader(w io.Writer, rec model.SessionRecord) {
	fmt.Fprintf(w, "\nPlayer: %s  |  Date: %s  |  Swings: %d  |  Session: %s\n\n",
		rec.PlayerID, rec.CreatedAt, rec.Score.Quality.SwingCount, shortID(rec.SessionID))
}

// PrintScoreCard prints the 4B sub-scores, flow components, and composite.
func PrintScoreCard(w io.Writer, s model.AggregateScore) {
	table := newTable(w)
	table.Header("SCORE", "20-80", "GRADE")
	table.Append("Body", strconv.Itoa(s.Body.Score), s.Body.Grade)
	table.Append("Bat", strconv.Itoa(s.Bat.Score), s.Bat.Grade)
	table.Append("Brain", strconv.Itoa(s.Brain.Score), s.Brain.Grade)
	table.Append("Ball", strconv.Itoa(s.Ball.Score), s.Ball.Grade)
	table.Append("Composite", strconv.Itoa(s.Composite.Score), s.Composite.Grade)
	table.Render()

	fmt.Fprintf(w, "Flow: ground %d  |  core %d  |  upper %d\n\n",
		s.GroundFlow, s.CoreFlow, s.UpperFlow)
}

// PrintLeak prints the leak classification with its training directive.
func PrintLeak(w io.Writer, leak model.LeakResult) {
	fmt.Fprintf(w, "Leak: %s\n  %s\n  Training: %s\n\n", leak.Type, leak.Caption, leak.Training)
}

// PrintProjections prints both projection models.
func PrintProjections(w io.Writer, s model.AggregateScore) {
	table := newTable(w)
	table.Header("PROJECTION", "CURRENT", "CEILING")
	table.Append("Bat speed",
		fmt.Sprintf("%.1f mph", s.Speed.CurrentBatSpeedMph),
		fmt.Sprintf("%.1f mph", s.Speed.CeilingBatSpeedMph))
	table.Append("Exit velocity",
		fmt.Sprintf("%.1f mph", s.Speed.CurrentExitVeloMph),
		fmt.Sprintf("%.1f mph", s.Speed.CeilingExitVeloMph))
	table.Render()

	if s.Potential.HasProjections {
		fmt.Fprintf(w, "Kinetic potential: %.1f mph ceiling, %.1f mph current, %.1f mph left on the table (efficiency %.0f%%)\n\n",
			s.Potential.CeilingSpeedMph, s.Potential.CurrentSpeedMph,
			s.Potential.GapMph, s.Potential.EfficiencyRatio*100)
	} else {
		fmt.Fprintf(w, "Kinetic potential: n/a (%s)\n\n", s.Potential.Warning)
	}
}

// PrintQuality prints the data-quality block and any warnings.
func PrintQuality(w io.Writer, q model.DataQuality) {
	bat := "no"
	if q.HasBatEnergy {
		bat = fmt.Sprintf("yes (%.0f%% coverage)", q.BatEnergyCoverage*100)
	}
	fmt.Fprintf(w, "Data quality: %d swings  |  bat signal: %s  |  consistency stats: %s\n",
		q.SwingCount, bat, yesNo(q.ConsistencyReliable))
	for _, warn := range q.Warnings {
		fmt.Fprintf(w, "  [warn] %s\n", warn)
	}
	fmt.Fprintln(w)
}

// PrintRawMetrics prints the averaged raw metric map, sorted by name.
func PrintRawMetrics(w io.Writer, metrics map[string]float64) {
	if len(metrics) == 0 {
		return
	}
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := newTable(w)
	table.Header("METRIC", "VALUE")
	for _, k := range keys {
		table.Append(k, fmt.Sprintf("%.2f", metrics[k]))
	}
	table.Render()
}

// PrintSessionList prints stored session summaries.
func PrintSessionList(w io.Writer, sessions []model.SessionSummary) {
	table := newTable(w)
	table.Header("SESSION", "PLAYER", "DATE", "COMPOSITE", "GRADE", "LEAK", "SWINGS")
	for _, s := range sessions {
		table.Append(
			shortID(s.SessionID),
			s.PlayerID,
			s.CreatedAt,
			strconv.Itoa(s.Composite),
			s.Grade,
			string(s.LeakType),
			strconv.Itoa(s.SwingCount),
		)
	}
	table.Render()
}

// PrintSession prints the full score card for one session.
func PrintSession(w io.Writer, rec model.SessionRecord) {
	PrintSessionHeader(w, rec)
	PrintScoreCard(w, rec.Score)
	PrintLeak(w, rec.Score.Leak)
	PrintProjections(w, rec.Score)
	PrintQuality(w, rec.Score.Quality)
	PrintRawMetrics(w, rec.Score.RawMetrics)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
