package motion

import "github.com/claude/repcoach/internal/pose"

// DefaultVisibilityThreshold is the confidence a key landmark needs before it
// counts toward the position score.
const DefaultVisibilityThreshold = 0.65

// calibrationLandmarks are the eight key points that must be in frame before
// phase tracking is worth starting.
var calibrationLandmarks = [...]int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

// PositionScore rates how well the athlete is positioned for tracking, 0–100.
// It is the fraction of key landmarks whose visibility exceeds the threshold;
// 100 only when all eight are confidently visible. Pure per-frame computation,
// no history.
func PositionScore(f pose.Frame, visibilityThreshold float64) int {
	if visibilityThreshold <= 0 {
		visibilityThreshold = DefaultVisibilityThreshold
	}
	visible := 0
	for _, idx := range calibrationLandmarks {
		lm, ok := f.At(idx)
		if ok && lm.Visibility > visibilityThreshold {
			visible++
		}
	}
	return visible * 100 / len(calibrationLandmarks)
}
