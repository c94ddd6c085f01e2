package models

import "testing"

// TestParseExerciseCanonical verifies that canonical kind names parse to
// themselves, confirming the alias map covers every supported kind.
func TestParseExerciseCanonical(t *testing.T) {
	for _, kind := range AllExercises {
		got, known := ParseExercise(string(kind))
		if !known {
			t.Errorf("ParseExercise(%q): expected known=true", kind)
		}
		if got != kind {
			t.Errorf("ParseExercise(%q) = %q, want %q", kind, got, kind)
		}
	}
}

// TestParseExerciseAliases verifies common user-facing names resolve to the
// right canonical kind regardless of casing and surrounding whitespace.
func TestParseExerciseAliases(t *testing.T) {
	cases := []struct {
		input string
		want  ExerciseKind
	}{
		{"Squats", ExerciseSquat},
		{"  air squat  ", ExerciseSquat},
		{"OHP", ExerciseOverheadPress},
		{"Military Press", ExerciseOverheadPress},
		{"bench", ExerciseBenchPress},
		{"Push-Up", ExercisePushUp},
		{"pullups", ExercisePullUp},
		{"chin-up", ExercisePullUp},
		{"Hanging Knee Raise", ExerciseKneeRaise},
		{"barbell row", ExerciseRowing},
	}
	for _, tc := range cases {
		got, known := ParseExercise(tc.input)
		if !known {
			t.Errorf("ParseExercise(%q): expected known=true", tc.input)
		}
		if got != tc.want {
			t.Errorf("ParseExercise(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestParseExerciseUnknown verifies unknown names fall back to custom with
// known=false so callers can warn without failing.
func TestParseExerciseUnknown(t *testing.T) {
	got, known := ParseExercise("underwater basket weaving")
	if known {
		t.Error("expected known=false for unknown exercise")
	}
	if got != ExerciseCustom {
		t.Errorf("fallback = %q, want %q", got, ExerciseCustom)
	}
}

// TestValid verifies the enum membership check used by request validation.
func TestValid(t *testing.T) {
	if !ExerciseSquat.Valid() {
		t.Error("squat should be valid")
	}
	if ExerciseKind("yoga").Valid() {
		t.Error("unknown kind should be invalid")
	}
}
