package replay

import (
	"testing"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/motion"
	"github.com/claude/repcoach/internal/pose"
)

// squatRecording builds a synthetic squat recording: descend over 10 frames,
// hold the bottom for 5, ascend over 10, hold the top for 5, at 100 ms per
// frame. One full repetition.
func squatRecording(t *testing.T) *Recording {
	t.Helper()

	var heights []float64
	for i := 1; i <= 10; i++ {
		heights = append(heights, 0.30+0.04*float64(i))
	}
	for i := 0; i < 5; i++ {
		heights = append(heights, 0.70)
	}
	for i := 1; i <= 10; i++ {
		heights = append(heights, 0.70-0.04*float64(i))
	}
	for i := 0; i < 5; i++ {
		heights = append(heights, 0.30)
	}

	header := models.RecordingHeader{Exercise: "squat", FPS: 10}
	if err := header.RecordedAt.Parse("2026-08-20T10:00:00Z"); err != nil {
		t.Fatal(err)
	}

	rec := &Recording{Header: header}
	for i, h := range heights {
		f := standingFrame()
		f[pose.LeftHip].Y = h
		f[pose.RightHip].Y = h
		rec.Frames = append(rec.Frames, models.RecordedFrame{
			OffsetMS:  float64(i) * 100,
			Landmarks: f,
		})
	}
	return rec
}

// TestAnalyzeSquatRecording runs a full squat cycle through Analyze and
// checks the resulting session and rep rows.
func TestAnalyzeSquatRecording(t *testing.T) {
	rec := squatRecording(t)

	payload, err := Analyze(rec, motion.DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	session := payload.Session
	if session.Exercise != models.ExerciseSquat {
		t.Errorf("exercise = %q, want squat", session.Exercise)
	}
	if session.Source != models.SessionSourceReplay {
		t.Errorf("source = %q, want replay", session.Source)
	}
	if session.TotalReps != 1 {
		t.Errorf("total reps = %d, want 1", session.TotalReps)
	}
	if len(payload.Reps) != 1 {
		t.Fatalf("rep rows = %d, want 1", len(payload.Reps))
	}

	rep := payload.Reps[0]
	if rep.SessionID != session.ID {
		t.Error("rep row not linked to session")
	}
	if rep.RepNumber != 1 {
		t.Errorf("rep number = %d, want 1", rep.RepNumber)
	}
	if !rep.CompletedAt.After(session.StartedAt) {
		t.Error("rep completed before session start")
	}

	// 30 frames at 100 ms: the last frame lands at 2.9 s.
	if got := session.DurationSec; got != 2.9 {
		t.Errorf("duration = %v, want 2.9", got)
	}
}

// TestAnalyzeStableSessionID verifies re-analyzing the same recording yields
// the same session ID, so re-imports dedupe at the server.
func TestAnalyzeStableSessionID(t *testing.T) {
	rec := squatRecording(t)

	first, err := Analyze(rec, motion.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Analyze(rec, motion.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if first.Session.ID != second.Session.ID {
		t.Errorf("session IDs differ: %s vs %s", first.Session.ID, second.Session.ID)
	}
}

func TestAnalyzeNoFrames(t *testing.T) {
	rec := squatRecording(t)
	rec.Frames = nil
	if _, err := Analyze(rec, motion.DefaultConfig()); err == nil {
		t.Error("expected error for recording with no frames")
	}
}

// TestAnalyzeUnknownExercise verifies unknown exercise names fall back to
// custom tracking instead of failing the file.
func TestAnalyzeUnknownExercise(t *testing.T) {
	rec := squatRecording(t)
	rec.Header.Exercise = "zercher_squat"

	payload, err := Analyze(rec, motion.DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if payload.Session.Exercise != models.ExerciseCustom {
		t.Errorf("exercise = %q, want custom", payload.Session.Exercise)
	}
}
