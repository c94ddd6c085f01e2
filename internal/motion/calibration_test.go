package motion

import (
	"testing"

	"github.com/claude/repcoach/internal/pose"
)

// TestPositionScoreFull verifies a fully visible body scores 100.
func TestPositionScoreFull(t *testing.T) {
	if got := PositionScore(standingFrame(), DefaultVisibilityThreshold); got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

// TestPositionScorePartial verifies the score tracks the fraction of key
// landmarks above the visibility threshold.
func TestPositionScorePartial(t *testing.T) {
	f := standingFrame()
	// Ankles and knees drop out of confident view: 4 of 8 remain.
	for _, idx := range []int{pose.LeftKnee, pose.RightKnee, pose.LeftAnkle, pose.RightAnkle} {
		f[idx].Visibility = 0.3
	}
	if got := PositionScore(f, DefaultVisibilityThreshold); got != 50 {
		t.Errorf("score = %d, want 50", got)
	}
}

// TestPositionScoreEmptyFrame verifies an empty frame scores 0 without
// panicking.
func TestPositionScoreEmptyFrame(t *testing.T) {
	if got := PositionScore(pose.Frame{}, DefaultVisibilityThreshold); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

// TestPositionScoreDefaultThreshold verifies a non-positive threshold falls
// back to the reference default rather than counting everything.
func TestPositionScoreDefaultThreshold(t *testing.T) {
	f := standingFrame()
	for _, idx := range calibrationLandmarks {
		f[idx].Visibility = 0.5 // below the 0.65 default
	}
	if got := PositionScore(f, 0); got != 0 {
		t.Errorf("score = %d, want 0 with default threshold", got)
	}
}
