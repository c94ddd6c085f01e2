package replay

import (
	"fmt"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/motion"
	"github.com/google/uuid"
)

// ImportPayload is the body of a bulk-import request: one analyzed session
// plus its reps.
type ImportPayload struct {
	Session models.SessionRow `json:"session"`
	Reps    []models.RepRow   `json:"reps"`
}

// ImportResult reports what the server actually stored. SessionInserted is
// false when the session was already imported (same ID).
type ImportResult struct {
	SessionInserted bool `json:"session_inserted"`
	RepsInserted    int  `json:"reps_inserted"`
}

// Analyze runs a recording through the motion pipeline and builds the rows
// to import. The session ID is derived from the recording's start time and
// exercise so re-analyzing the same file yields the same ID.
func Analyze(rec *Recording, cfg motion.Config) (*ImportPayload, error) {
	if len(rec.Frames) == 0 {
		return nil, fmt.Errorf("recording has no frames")
	}

	// Unknown exercise names fall back to custom tracking rather than
	// refusing the file.
	exercise, _ := models.ParseExercise(rec.Header.Exercise)

	start := rec.Header.RecordedAt.Time
	sessionID := sessionIDFor(exercise, start)

	tracker := motion.NewTracker(exercise, cfg)

	var reps []models.RepRow
	var lastAt time.Time
	for _, frame := range rec.Frames {
		at := frame.At(start)
		_, ev := tracker.Observe(frame.Landmarks, at)
		lastAt = at
		if ev == nil {
			continue
		}
		reps = append(reps, models.RepRow{
			ID:          uuid.New(),
			SessionID:   sessionID,
			RepNumber:   ev.Count,
			CompletedAt: ev.At,
			LeftKnee:    ev.Angles.LeftKnee,
			RightKnee:   ev.Angles.RightKnee,
			LeftHip:     ev.Angles.LeftHip,
			RightHip:    ev.Angles.RightHip,
			LeftElbow:   ev.Angles.LeftElbow,
			RightElbow:  ev.Angles.RightElbow,
			BackAngle:   ev.Angles.Back,
		})
	}

	session := models.SessionRow{
		ID:          sessionID,
		Exercise:    exercise,
		StartedAt:   start,
		EndedAt:     lastAt,
		DurationSec: lastAt.Sub(start).Seconds(),
		TotalReps:   tracker.Reps(),
		Source:      models.SessionSourceReplay,
	}

	return &ImportPayload{Session: session, Reps: reps}, nil
}

// sessionIDFor derives a stable UUID from the exercise and start time, so
// importing the same recording twice hits the sessions table's conflict
// clause instead of duplicating the session.
func sessionIDFor(exercise models.ExerciseKind, start time.Time) uuid.UUID {
	name := fmt.Sprintf("%s/%d", exercise, start.UnixMilli())
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}
