package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitworks/swingmetrics/internal/model"
)

// UpsertPlayer inserts or replaces a player's attributes.
func (db *DB) UpsertPlayer(p model.Player) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO players(id, name, hand, level, height_in, weight_lb)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Hand.String(), string(p.Level), p.HeightIn, p.WeightLb,
	)
	return err
}

// GetPlayer returns the player with the given id, or nil when unknown.
func (db *DB) GetPlayer(id string) (*model.Player, error) {
	var p model.Player
	var hand, level string
	err := db.conn.QueryRow(`
		SELECT id, name, hand, level, height_in, weight_lb
		FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &hand, &level, &p.HeightIn, &p.WeightLb)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Hand = model.ParseHandedness(hand)
	p.Level = model.Level(level)
	return &p, nil
}

// InsertSession persists a computed score, assigning the session id and
// timestamp; the engine is agnostic to both.
func (db *DB) InsertSession(score model.AggregateScore) (model.SessionRecord, error) {
	rec := model.SessionRecord{
		SessionID: uuid.NewString(),
		PlayerID:  score.PlayerID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Score:     score,
	}

	warnings, err := json.Marshal(score.Quality.Warnings)
	if err != nil {
		return rec, fmt.Errorf("marshal warnings: %w", err)
	}
	rawMetrics, err := json.Marshal(score.RawMetrics)
	if err != nil {
		return rec, fmt.Errorf("marshal raw metrics: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO score_sessions(
			session_id, player_id, created_at,
			brain, body, bat, ball, composite,
			brain_grade, body_grade, bat_grade, ball_grade, composite_grade,
			ground_flow, core_flow, upper_flow,
			leak_type, leak_caption, leak_training,
			cur_bat_speed, ceil_bat_speed, cur_exit_velo, ceil_exit_velo, efficiency_pct,
			pot_has, pot_ceiling, pot_current, pot_gap, pot_efficiency, pot_mass_kg, pot_lever, pot_warning,
			swing_count, has_bat_energy, bat_coverage, consistency_reliable, warnings,
			raw_metrics
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.SessionID, rec.PlayerID, rec.CreatedAt,
		score.Brain.Score, score.Body.Score, score.Bat.Score, score.Ball.Score, score.Composite.Score,
		score.Brain.Grade, score.Body.Grade, score.Bat.Grade, score.Ball.Grade, score.Composite.Grade,
		score.GroundFlow, score.CoreFlow, score.UpperFlow,
		string(score.Leak.Type), score.Leak.Caption, score.Leak.Training,
		score.Speed.CurrentBatSpeedMph, score.Speed.CeilingBatSpeedMph,
		score.Speed.CurrentExitVeloMph, score.Speed.CeilingExitVeloMph, score.Speed.EfficiencyPct,
		boolInt(score.Potential.HasProjections), score.Potential.CeilingSpeedMph,
		score.Potential.CurrentSpeedMph, score.Potential.GapMph, score.Potential.EfficiencyRatio,
		score.Potential.MassKg, score.Potential.LeverIndex, score.Potential.Warning,
		score.Quality.SwingCount, boolInt(score.Quality.HasBatEnergy),
		score.Quality.BatEnergyCoverage, boolInt(score.Quality.ConsistencyReliable), string(warnings),
		string(rawMetrics),
	)
	if err != nil {
		return rec, fmt.Errorf("insert session: %w", err)
	}
	return rec, nil
}

// ListSessions returns stored session summaries ordered newest first.
func (db *DB) ListSessions() ([]model.SessionSummary, error) {
	rows, err := db.conn.Query(`
		SELECT session_id, player_id, created_at, composite, composite_grade, leak_type, swing_count
		FROM score_sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SessionSummary
	for rows.Next() {
		var s model.SessionSummary
		var leak string
		if err := rows.Scan(&s.SessionID, &s.PlayerID, &s.CreatedAt,
			&s.Composite, &s.Grade, &leak, &s.SwingCount); err != nil {
			return nil, err
		}
		s.LeakType = model.LeakType(leak)
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSessionByPrefix finds the first session whose id starts with prefix,
// or nil when none matches.
func (db *DB) GetSessionByPrefix(prefix string) (*model.SessionRecord, error) {
	row := db.conn.QueryRow(`
		SELECT session_id, player_id, created_at,
		       brain, body, bat, ball, composite,
		       brain_grade, body_grade, bat_grade, ball_grade, composite_grade,
		       ground_flow, core_flow, upper_flow,
		       leak_type, leak_caption, leak_training,
		       cur_bat_speed, ceil_bat_speed, cur_exit_velo, ceil_exit_velo, efficiency_pct,
		       pot_has, pot_ceiling, pot_current, pot_gap, pot_efficiency, pot_mass_kg, pot_lever, pot_warning,
		       swing_count, has_bat_energy, bat_coverage, consistency_reliable, warnings,
		       raw_metrics
		FROM score_sessions WHERE session_id LIKE ? LIMIT 1`, prefix+"%")

	var rec model.SessionRecord
	var score model.AggregateScore
	var leak string
	var potHas, hasBat, reliable int
	var warnings, rawMetrics string
	err := row.Scan(
		&rec.SessionID, &rec.PlayerID, &rec.CreatedAt,
		&score.Brain.Score, &score.Body.Score, &score.Bat.Score, &score.Ball.Score, &score.Composite.Score,
		&score.Brain.Grade, &score.Body.Grade, &score.Bat.Grade, &score.Ball.Grade, &score.Composite.Grade,
		&score.GroundFlow, &score.CoreFlow, &score.UpperFlow,
		&leak, &score.Leak.Caption, &score.Leak.Training,
		&score.Speed.CurrentBatSpeedMph, &score.Speed.CeilingBatSpeedMph,
		&score.Speed.CurrentExitVeloMph, &score.Speed.CeilingExitVeloMph, &score.Speed.EfficiencyPct,
		&potHas, &score.Potential.CeilingSpeedMph,
		&score.Potential.CurrentSpeedMph, &score.Potential.GapMph, &score.Potential.EfficiencyRatio,
		&score.Potential.MassKg, &score.Potential.LeverIndex, &score.Potential.Warning,
		&score.Quality.SwingCount, &hasBat, &score.Quality.BatEnergyCoverage, &reliable, &warnings,
		&rawMetrics,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	score.PlayerID = rec.PlayerID
	score.Leak.Type = model.LeakType(leak)
	score.Potential.HasProjections = potHas != 0
	score.Quality.HasBatEnergy = hasBat != 0
	score.Quality.ConsistencyReliable = reliable != 0
	if err := json.Unmarshal([]byte(warnings), &score.Quality.Warnings); err != nil {
		return nil, fmt.Errorf("decode warnings: %w", err)
	}
	if err := json.Unmarshal([]byte(rawMetrics), &score.RawMetrics); err != nil {
		return nil, fmt.Errorf("decode raw metrics: %w", err)
	}
	rec.Score = score
	return &rec, nil
}

// DeleteSessionByPrefix removes the sessions whose id starts with prefix and
// returns how many rows were deleted.
func (db *DB) DeleteSessionByPrefix(prefix string) (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM score_sessions WHERE session_id LIKE ?`, prefix+"%")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SessionsForPlayer returns all stored sessions for one player, newest first.
func (db *DB) SessionsForPlayer(playerID string) ([]model.SessionRecord, error) {
	summaries, err := db.ListSessions()
	if err != nil {
		return nil, err
	}
	var out []model.SessionRecord
	for _, s := range summaries {
		if s.PlayerID != playerID {
			continue
		}
		rec, err := db.GetSessionByPrefix(s.SessionID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
