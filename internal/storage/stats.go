package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored training data.
type DataStats struct {
	TotalSessions      int64          `json:"total_sessions"`
	TotalReps          int64          `json:"total_reps"`
	EarliestSession    *time.Time     `json:"earliest_session"`
	LatestSession      *time.Time     `json:"latest_session"`
	SessionsByExercise []ExerciseStat `json:"sessions_by_exercise"`
}

// ExerciseStat holds summary stats for a single exercise kind.
type ExerciseStat struct {
	Exercise      string  `json:"exercise"`
	Sessions      int64   `json:"sessions"`
	Reps          int64   `json:"reps"`
	TotalDuration float64 `json:"total_duration_sec"`
}

// GetDataStats returns aggregate statistics for a user's stored sessions.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_reps), 0), MIN(started_at), MAX(started_at)
		 FROM sessions WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSessions, &stats.TotalReps, &stats.EarliestSession, &stats.LatestSession)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT exercise, COUNT(*), COALESCE(SUM(total_reps), 0), COALESCE(SUM(duration_sec), 0)
		 FROM sessions
		 WHERE user_id = $1
		 GROUP BY exercise
		 ORDER BY COUNT(*) DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions by exercise: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Exercise, &s.Sessions, &s.Reps, &s.TotalDuration); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.SessionsByExercise = append(stats.SessionsByExercise, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// RepStats holds per-exercise aggregate joint-angle statistics, used by the
// coaching tools to spot form drift over time.
type RepStats struct {
	Exercise     string   `json:"exercise"`
	RepCount     int64    `json:"rep_count"`
	AvgLeftKnee  *float64 `json:"avg_left_knee"`
	AvgRightKnee *float64 `json:"avg_right_knee"`
	AvgLeftHip   *float64 `json:"avg_left_hip"`
	AvgRightHip  *float64 `json:"avg_right_hip"`
	AvgBack      *float64 `json:"avg_back"`
	MaxBack      *float64 `json:"max_back"`
}

// GetRepStats aggregates joint angles across all reps of an exercise in a
// time range.
func (db *DB) GetRepStats(ctx context.Context, exercise string, start, end time.Time, userID int) (*RepStats, error) {
	stats := &RepStats{Exercise: exercise}
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), AVG(r.left_knee), AVG(r.right_knee), AVG(r.left_hip), AVG(r.right_hip),
		        AVG(r.back_angle), MAX(r.back_angle)
		 FROM reps r
		 JOIN sessions s ON s.id = r.session_id
		 WHERE s.exercise = $1 AND r.completed_at >= $2 AND r.completed_at < $3 AND r.user_id = $4`,
		exercise, start, end, userID,
	).Scan(&stats.RepCount, &stats.AvgLeftKnee, &stats.AvgRightKnee,
		&stats.AvgLeftHip, &stats.AvgRightHip, &stats.AvgBack, &stats.MaxBack)
	if err != nil {
		return nil, fmt.Errorf("aggregating rep stats: %w", err)
	}
	return stats, nil
}

// DailyReps is one day's total rep count, used for progress charts.
type DailyReps struct {
	Day  time.Time `json:"day"`
	Reps int64     `json:"reps"`
}

// GetDailyReps returns per-day rep totals in a time range.
func (db *DB) GetDailyReps(ctx context.Context, start, end time.Time, userID int) ([]DailyReps, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc('day', completed_at) AS day, COUNT(*)
		 FROM reps
		 WHERE completed_at >= $1 AND completed_at < $2 AND user_id = $3
		 GROUP BY day
		 ORDER BY day`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying daily reps: %w", err)
	}
	defer rows.Close()

	var out []DailyReps
	for rows.Next() {
		var d DailyReps
		if err := rows.Scan(&d.Day, &d.Reps); err != nil {
			return nil, fmt.Errorf("scanning daily reps: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
