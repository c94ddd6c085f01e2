package models

import (
	"time"

	"github.com/google/uuid"
)

// Session sources.
const (
	SessionSourceLive   = "live"
	SessionSourceReplay = "replay"
)

// SessionRow is a row ready for insertion into the sessions table.
type SessionRow struct {
	ID          uuid.UUID    `json:"id"`
	UserID      int          `json:"user_id"`
	Exercise    ExerciseKind `json:"exercise"`
	StartedAt   time.Time    `json:"started_at"`
	EndedAt     time.Time    `json:"ended_at"`
	DurationSec float64      `json:"duration_sec"`
	TotalReps   int          `json:"total_reps"`
	Source      string       `json:"source"`
}

// RepRow is a row ready for insertion into the reps table. Angle columns
// carry the JointAngles of the frame that completed the rep.
type RepRow struct {
	ID          uuid.UUID `json:"id"`
	SessionID   uuid.UUID `json:"session_id"`
	UserID      int       `json:"user_id"`
	RepNumber   int       `json:"rep_number"`
	CompletedAt time.Time `json:"completed_at"`
	LeftKnee    float64   `json:"left_knee"`
	RightKnee   float64   `json:"right_knee"`
	LeftHip     float64   `json:"left_hip"`
	RightHip    float64   `json:"right_hip"`
	LeftElbow   float64   `json:"left_elbow"`
	RightElbow  float64   `json:"right_elbow"`
	BackAngle   float64   `json:"back_angle"`
}
