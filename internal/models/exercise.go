package models

import "strings"

// ExerciseKind identifies one of the supported exercise movements. Set once
// per session; drives which landmarks and thresholds the motion tracker uses.
type ExerciseKind string

const (
	ExerciseSquat         ExerciseKind = "squat"
	ExerciseDeadlift      ExerciseKind = "deadlift"
	ExerciseOverheadPress ExerciseKind = "overhead_press"
	ExerciseBenchPress    ExerciseKind = "bench_press"
	ExercisePushUp        ExerciseKind = "push_up"
	ExercisePullUp        ExerciseKind = "pull_up"
	ExerciseKneeRaise     ExerciseKind = "knee_raise"
	ExerciseRowing        ExerciseKind = "rowing"
	ExerciseCustom        ExerciseKind = "custom"
)

// AllExercises lists every supported kind, in display order.
var AllExercises = []ExerciseKind{
	ExerciseSquat,
	ExerciseDeadlift,
	ExerciseOverheadPress,
	ExerciseBenchPress,
	ExercisePushUp,
	ExercisePullUp,
	ExerciseKneeRaise,
	ExerciseRowing,
	ExerciseCustom,
}

// exerciseAliases maps lowercased user-facing exercise names to their
// canonical kind. Covers the names that show up in imported recordings and
// client requests.
var exerciseAliases = map[string]ExerciseKind{
	"squat":            ExerciseSquat,
	"squats":           ExerciseSquat,
	"air squat":        ExerciseSquat,
	"back squat":       ExerciseSquat,
	"bodyweight squat": ExerciseSquat,
	"goblet squat":     ExerciseSquat,

	"deadlift":          ExerciseDeadlift,
	"deadlifts":         ExerciseDeadlift,
	"romanian deadlift": ExerciseDeadlift,
	"rdl":               ExerciseDeadlift,

	"overhead_press": ExerciseOverheadPress,
	"overhead press": ExerciseOverheadPress,
	"ohp":            ExerciseOverheadPress,
	"military press": ExerciseOverheadPress,
	"shoulder press": ExerciseOverheadPress,

	"bench_press": ExerciseBenchPress,
	"bench press": ExerciseBenchPress,
	"bench":       ExerciseBenchPress,

	"push_up":  ExercisePushUp,
	"push-up":  ExercisePushUp,
	"push up":  ExercisePushUp,
	"pushup":   ExercisePushUp,
	"pushups":  ExercisePushUp,
	"press-up": ExercisePushUp,

	"pull_up": ExercisePullUp,
	"pull-up": ExercisePullUp,
	"pull up": ExercisePullUp,
	"pullup":  ExercisePullUp,
	"pullups": ExercisePullUp,
	"chin-up": ExercisePullUp,
	"chinup":  ExercisePullUp,

	"knee_raise":         ExerciseKneeRaise,
	"knee raise":         ExerciseKneeRaise,
	"knee raises":        ExerciseKneeRaise,
	"hanging knee raise": ExerciseKneeRaise,

	"rowing":        ExerciseRowing,
	"row":           ExerciseRowing,
	"barbell row":   ExerciseRowing,
	"seated row":    ExerciseRowing,
	"bent-over row": ExerciseRowing,

	"custom": ExerciseCustom,
}

// ParseExercise maps a possibly-aliased exercise name to its canonical kind.
// Returns the kind and true if recognized, or ExerciseCustom and false if
// unknown, so callers can log a warning and still proceed.
func ParseExercise(raw string) (ExerciseKind, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if kind, ok := exerciseAliases[lower]; ok {
		return kind, true
	}
	return ExerciseCustom, false
}

// Valid reports whether k is one of the supported kinds.
func (k ExerciseKind) Valid() bool {
	for _, e := range AllExercises {
		if k == e {
			return true
		}
	}
	return false
}
