package motion

import (
	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/pose"
)

// Phase is a coarse label for where in the repetition cycle the body is.
// Standing doubles as the startup state before enough history exists.
type Phase string

const (
	PhaseStanding   Phase = "standing"
	PhaseDescending Phase = "descending"
	PhaseAscending  Phase = "ascending"
	PhaseBottom     Phase = "bottom"
	PhaseTop        Phase = "top"
)

type axis int

const (
	axisVertical axis = iota
	axisHorizontal
)

// profile describes how one exercise kind is tracked: which landmarks form
// the reference point, the movement axis, the extremum thresholds, and the
// direction sign (+1 when a growing coordinate moves toward the bottom of the
// rep, -1 when it moves toward the top).
type profile struct {
	landmarks []int
	axis      axis
	// In sign-adjusted coordinates: paused beyond bottomAt reads bottom,
	// paused beyond topAt reads top.
	bottomAt float64
	topAt    float64
	sign     float64
}

// profiles is the strategy table keyed by exercise kind. Thresholds are
// normalized frame coordinates, tuned empirically; config may override the
// pause threshold but these anchors travel with the exercise.
//
// Image coordinates grow downward, so for every vertical exercise here the
// bottom of the rep is the larger Y. Rowing tracks the elbow midpoint
// horizontally with arms-extended as the bottom.
var profiles = map[models.ExerciseKind]profile{
	models.ExerciseSquat: {
		landmarks: []int{pose.LeftHip, pose.RightHip},
		axis:      axisVertical, bottomAt: 0.65, topAt: 0.40, sign: 1,
	},
	models.ExerciseDeadlift: {
		landmarks: []int{pose.LeftHip, pose.RightHip},
		axis:      axisVertical, bottomAt: 0.60, topAt: 0.40, sign: 1,
	},
	models.ExerciseKneeRaise: {
		landmarks: []int{pose.LeftHip, pose.RightHip},
		axis:      axisVertical, bottomAt: 0.62, topAt: 0.45, sign: 1,
	},
	models.ExercisePushUp: {
		landmarks: []int{pose.LeftShoulder, pose.RightShoulder},
		axis:      axisVertical, bottomAt: 0.60, topAt: 0.45, sign: 1,
	},
	models.ExerciseBenchPress: {
		landmarks: []int{pose.LeftShoulder, pose.RightShoulder},
		axis:      axisVertical, bottomAt: 0.60, topAt: 0.45, sign: 1,
	},
	models.ExerciseOverheadPress: {
		landmarks: []int{pose.LeftWrist, pose.RightWrist},
		axis:      axisVertical, bottomAt: 0.45, topAt: 0.20, sign: 1,
	},
	models.ExercisePullUp: {
		landmarks: []int{pose.Nose},
		axis:      axisVertical, bottomAt: 0.55, topAt: 0.25, sign: 1,
	},
	models.ExerciseRowing: {
		landmarks: []int{pose.LeftElbow, pose.RightElbow},
		axis:      axisHorizontal, bottomAt: 0.60, topAt: 0.40, sign: 1,
	},
	models.ExerciseCustom: {
		landmarks: []int{pose.LeftHip, pose.RightHip},
		axis:      axisVertical, bottomAt: 0.65, topAt: 0.40, sign: 1,
	},
}

// profileFor returns the tracking profile for kind, falling back to the
// custom (hip-tracking) profile for unknown kinds.
func profileFor(kind models.ExerciseKind) profile {
	if p, ok := profiles[kind]; ok {
		return p
	}
	return profiles[models.ExerciseCustom]
}

// reference returns the sign-adjusted scalar coordinate of the profile's
// reference point for this frame, or false if any required landmark is
// missing.
func (p profile) reference(f pose.Frame) (float64, bool) {
	var sum float64
	for _, idx := range p.landmarks {
		lm, ok := f.At(idx)
		if !ok {
			return 0, false
		}
		if p.axis == axisHorizontal {
			sum += lm.X
		} else {
			sum += lm.Y
		}
	}
	return p.sign * sum / float64(len(p.landmarks)), true
}

// classify derives the raw per-frame phase from the motion history, which
// already contains this frame's sample as its newest entry. The result is
// intentionally noisy near thresholds; the tracker's vote buffer smooths it.
func (p profile) classify(history []float64, pauseThreshold float64) Phase {
	if len(history) < velocityWindow {
		return PhaseStanding
	}
	recent := history[len(history)-velocityWindow:]
	velocity := (recent[len(recent)-1] - recent[0]) / velocityWindow
	current := recent[len(recent)-1]

	if velocity < pauseThreshold && velocity > -pauseThreshold {
		switch {
		case current >= p.bottomAt:
			return PhaseBottom
		case current <= p.topAt:
			return PhaseTop
		default:
			return PhaseStanding
		}
	}
	if velocity > 0 {
		return PhaseDescending
	}
	return PhaseAscending
}
