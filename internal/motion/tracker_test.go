package motion

import (
	"testing"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/pose"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// feedVotes pushes a sequence of raw phases through the stabilization state
// machine at the given time, returning the last emitted rep event (if any).
func feedVotes(tr *Tracker, at time.Time, phases ...Phase) *RepEvent {
	var last *RepEvent
	for _, p := range phases {
		if ev := tr.vote(p, JointAngles{}, at); ev != nil {
			last = ev
		}
	}
	return last
}

// TestVoteWarmup verifies the startup guard: no phase is confirmed before the
// vote buffer holds at least four samples, however unanimous the votes.
func TestVoteWarmup(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())
	feedVotes(tr, t0, PhaseBottom, PhaseBottom, PhaseBottom)
	if tr.Phase() != PhaseStanding {
		t.Errorf("phase after 3 votes = %q, want standing", tr.Phase())
	}
	feedVotes(tr, t0, PhaseBottom)
	if tr.Phase() != PhaseBottom {
		t.Errorf("phase after 4 unanimous votes = %q, want bottom", tr.Phase())
	}
}

// TestNoFlicker verifies the voting rule: 3-of-5 bottom wins even with trailing
// ascending noise, while a split window with no majority changes nothing.
func TestNoFlicker(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())
	feedVotes(tr, t0, PhaseBottom, PhaseBottom, PhaseBottom, PhaseAscending, PhaseAscending)
	if tr.Phase() != PhaseBottom {
		t.Errorf("3-of-5 bottom: phase = %q, want bottom", tr.Phase())
	}

	split := NewTracker(models.ExerciseSquat, DefaultConfig())
	feedVotes(split, t0, PhaseBottom, PhaseBottom, PhaseTop, PhaseTop, PhaseAscending)
	if split.Phase() != PhaseStanding {
		t.Errorf("split vote: phase = %q, want standing (no stable phase)", split.Phase())
	}
}

// TestTransitionalPhasesNeverConfirmed verifies ascending/descending are not
// confirmation candidates no matter how dominant they are.
func TestTransitionalPhasesNeverConfirmed(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())
	feedVotes(tr, t0, PhaseDescending, PhaseDescending, PhaseDescending, PhaseDescending, PhaseDescending)
	if tr.Phase() != PhaseStanding {
		t.Errorf("phase = %q, want standing", tr.Phase())
	}
}

// TestRepCountedOnBottomToTop verifies a full bottom→top transition counts
// exactly one repetition and emits an event carrying the rep number.
func TestRepCountedOnBottomToTop(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())
	feedVotes(tr, t0, PhaseBottom, PhaseBottom, PhaseBottom, PhaseBottom, PhaseBottom)
	if tr.Reps() != 0 {
		t.Fatalf("first lock should not count, reps = %d", tr.Reps())
	}

	ev := feedVotes(tr, t0.Add(time.Second), PhaseTop, PhaseTop, PhaseTop, PhaseTop, PhaseTop)
	if tr.Reps() != 1 {
		t.Errorf("reps = %d, want 1", tr.Reps())
	}
	if ev == nil {
		t.Fatal("expected a rep event on the bottom→top transition")
	}
	if ev.Count != 1 || ev.Exercise != models.ExerciseSquat {
		t.Errorf("event = %+v, want count 1 for squat", ev)
	}
}

// TestDirectionality verifies the asymmetric counting rule: a top→bottom
// transition never increments the counter, however stable it is.
func TestDirectionality(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())
	feedVotes(tr, t0, PhaseTop, PhaseTop, PhaseTop, PhaseTop, PhaseTop)
	if ev := feedVotes(tr, t0.Add(2*time.Second), PhaseBottom, PhaseBottom, PhaseBottom, PhaseBottom, PhaseBottom); ev != nil {
		t.Error("top→bottom must not emit a rep event")
	}
	if tr.Reps() != 0 {
		t.Errorf("reps = %d, want 0 after top→bottom", tr.Reps())
	}
	if tr.Phase() != PhaseBottom {
		t.Errorf("phase = %q, want bottom (transition still confirmed)", tr.Phase())
	}
}

// TestMinRepInterval verifies the single-count invariant: two bottom→top
// transitions closer than the minimum interval count once; spaced beyond it
// they count twice.
func TestMinRepInterval(t *testing.T) {
	cycle := func(tr *Tracker, at time.Time) {
		feedVotes(tr, at, PhaseBottom, PhaseBottom, PhaseBottom, PhaseBottom, PhaseBottom)
		feedVotes(tr, at, PhaseTop, PhaseTop, PhaseTop, PhaseTop, PhaseTop)
	}

	fast := NewTracker(models.ExerciseSquat, DefaultConfig())
	cycle(fast, t0)
	cycle(fast, t0.Add(500*time.Millisecond))
	if fast.Reps() != 1 {
		t.Errorf("reps with 500ms spacing = %d, want 1 (jitter rejected)", fast.Reps())
	}
	// The phase still advanced to top, so a later legitimate rep counts.
	cycle(fast, t0.Add(2*time.Second))
	if fast.Reps() != 2 {
		t.Errorf("reps after a later full cycle = %d, want 2", fast.Reps())
	}

	spaced := NewTracker(models.ExerciseSquat, DefaultConfig())
	cycle(spaced, t0)
	cycle(spaced, t0.Add(900*time.Millisecond))
	if spaced.Reps() != 2 {
		t.Errorf("reps with 900ms spacing = %d, want 2", spaced.Reps())
	}
}

// TestHistoryCapacity verifies the motion history is a FIFO capped at its
// capacity: oldest samples are evicted, newest kept.
func TestHistoryCapacity(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())
	for i := 0; i < historySize+10; i++ {
		tr.push(float64(i))
	}
	if len(tr.history) != historySize {
		t.Fatalf("history length = %d, want %d", len(tr.history), historySize)
	}
	if tr.history[0] != 10 {
		t.Errorf("oldest sample = %v, want 10 (first ten evicted)", tr.history[0])
	}
	if tr.history[historySize-1] != float64(historySize+9) {
		t.Errorf("newest sample = %v, want %d", tr.history[historySize-1], historySize+9)
	}
}

// TestReset verifies the session-reset invariant: buffers empty, phase back
// to standing, count zero, debounce timestamp cleared.
func TestReset(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())
	feedVotes(tr, t0, PhaseBottom, PhaseBottom, PhaseBottom, PhaseBottom, PhaseBottom)
	feedVotes(tr, t0.Add(time.Second), PhaseTop, PhaseTop, PhaseTop, PhaseTop, PhaseTop)
	tr.push(0.5)

	tr.Reset()
	if tr.Reps() != 0 {
		t.Errorf("reps after reset = %d, want 0", tr.Reps())
	}
	if tr.Phase() != PhaseStanding {
		t.Errorf("phase after reset = %q, want standing", tr.Phase())
	}
	if len(tr.history) != 0 || len(tr.votes) != 0 {
		t.Errorf("buffers after reset = %d/%d samples, want empty", len(tr.history), len(tr.votes))
	}
	if !tr.lastRep.IsZero() {
		t.Error("lastRep after reset should be zero")
	}
}

// TestEndToEndSquatCycle feeds a synthetic hip-height trajectory through
// Observe: descend 0.3→0.7 over 10 frames, hold 5, ascend back over 10, hold
// 5. Exactly one repetition must be counted, ending confirmed at top.
func TestEndToEndSquatCycle(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())

	var heights []float64
	for i := 1; i <= 10; i++ {
		heights = append(heights, 0.30+0.04*float64(i)) // 0.34 → 0.70
	}
	for i := 0; i < 5; i++ {
		heights = append(heights, 0.70)
	}
	for i := 1; i <= 10; i++ {
		heights = append(heights, 0.70-0.04*float64(i)) // 0.66 → 0.30
	}
	for i := 0; i < 5; i++ {
		heights = append(heights, 0.30)
	}

	var events int
	at := t0
	var last Observation
	for _, h := range heights {
		obs, ev := tr.Observe(hipFrame(h), at)
		if ev != nil {
			events++
		}
		last = obs
		at = at.Add(100 * time.Millisecond) // ~10 fps
	}

	if events != 1 {
		t.Errorf("rep events = %d, want exactly 1", events)
	}
	if last.Reps != 1 {
		t.Errorf("final rep count = %d, want 1", last.Reps)
	}
	if last.Phase != PhaseTop {
		t.Errorf("final confirmed phase = %q, want top", last.Phase)
	}
}

// TestObserveMissingReference verifies that frames without the reference
// landmarks leave phase tracking parked at standing: no history growth, no
// confirmations, and no panic. Next frame may be better.
func TestObserveMissingReference(t *testing.T) {
	tr := NewTracker(models.ExerciseSquat, DefaultConfig())
	for i := 0; i < 10; i++ {
		obs, ev := tr.Observe(make(pose.Frame, 5), t0)
		if ev != nil {
			t.Fatal("no rep events expected without landmarks")
		}
		if obs.RawPhase != PhaseStanding {
			t.Errorf("raw phase = %q, want standing", obs.RawPhase)
		}
	}
	if len(tr.history) != 0 {
		t.Errorf("history length = %d, want 0 without reference landmarks", len(tr.history))
	}
}
