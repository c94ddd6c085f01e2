package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/google/uuid"
)

// InsertSession inserts a completed session row. Returns true if inserted,
// false if the session ID already exists (replay re-uploads are idempotent).
func (db *DB) InsertSession(ctx context.Context, row models.SessionRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, exercise, started_at, ended_at, duration_sec, total_reps, source)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.UserID, row.Exercise, row.StartedAt, row.EndedAt,
		row.DurationSec, row.TotalReps, row.Source)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuerySessions retrieves sessions in a time range, newest first, optionally
// filtered by exercise kind.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, userID int, exercise string) ([]models.SessionRow, error) {
	query := `SELECT id, user_id, exercise, started_at, ended_at, duration_sec, total_reps, source
	          FROM sessions
	          WHERE started_at >= $1 AND started_at < $2 AND user_id = $3`
	args := []any{start, end, userID}
	if exercise != "" {
		query += ` AND exercise = $4`
		args = append(args, exercise)
	}
	query += ` ORDER BY started_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var out []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		if err := rows.Scan(&s.ID, &s.UserID, &s.Exercise, &s.StartedAt, &s.EndedAt,
			&s.DurationSec, &s.TotalReps, &s.Source); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SessionDetail is a session with its individual reps.
type SessionDetail struct {
	models.SessionRow
	Reps []models.RepRow `json:"reps"`
}

// GetSession retrieves a single session with all of its reps.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID, userID int) (*SessionDetail, error) {
	var s models.SessionRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, exercise, started_at, ended_at, duration_sec, total_reps, source
		 FROM sessions WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	).Scan(&s.ID, &s.UserID, &s.Exercise, &s.StartedAt, &s.EndedAt,
		&s.DurationSec, &s.TotalReps, &s.Source)
	if err != nil {
		return nil, fmt.Errorf("querying session %s: %w", sessionID, err)
	}

	reps, err := db.QueryReps(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return &SessionDetail{SessionRow: s, Reps: reps}, nil
}
