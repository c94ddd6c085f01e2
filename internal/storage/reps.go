package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/repcoach/internal/models"
	"github.com/google/uuid"
)

// InsertReps batch-inserts rep rows (session finish and replay import).
// Returns count inserted.
func (db *DB) InsertReps(ctx context.Context, rows []models.RepRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO reps (id, session_id, user_id, rep_number, completed_at,
	 left_knee, right_knee, left_hip, right_hip, left_elbow, right_elbow, back_angle) VALUES `
	args := make([]any, 0, len(rows)*12)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 12
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12,
		))
		args = append(args, r.ID, r.SessionID, r.UserID, r.RepNumber, r.CompletedAt,
			r.LeftKnee, r.RightKnee, r.LeftHip, r.RightHip,
			r.LeftElbow, r.RightElbow, r.BackAngle)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting reps: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryReps retrieves a session's reps in completion order.
func (db *DB) QueryReps(ctx context.Context, sessionID uuid.UUID, userID int) ([]models.RepRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, session_id, user_id, rep_number, completed_at,
		 left_knee, right_knee, left_hip, right_hip, left_elbow, right_elbow, back_angle
		 FROM reps
		 WHERE session_id = $1 AND user_id = $2
		 ORDER BY rep_number`,
		sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying reps: %w", err)
	}
	defer rows.Close()

	var out []models.RepRow
	for rows.Next() {
		var r models.RepRow
		if err := rows.Scan(&r.ID, &r.SessionID, &r.UserID, &r.RepNumber, &r.CompletedAt,
			&r.LeftKnee, &r.RightKnee, &r.LeftHip, &r.RightHip,
			&r.LeftElbow, &r.RightElbow, &r.BackAngle); err != nil {
			return nil, fmt.Errorf("scanning rep: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
