package motion

import (
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/pose"
)

// Reference tuning values. Behavior parity depends on these; Config carries
// the adjustable ones with these as defaults.
const (
	historySize    = 30  // motion history samples kept for velocity estimation
	velocityWindow = 5   // samples used for the average-velocity estimate
	voteSize       = 6   // raw phases kept in the vote buffer
	voteWindow     = 5   // votes tallied per frame
	voteMin        = 3   // votes required to confirm a phase
	voteWarmup     = 4   // buffered votes required before acting at all

	defaultPauseThreshold = 0.01 // normalized units/frame below which motion counts as paused
	defaultMinRepInterval = 800 * time.Millisecond
)

// Config holds the tracker tunables. Zero values fall back to the reference
// defaults; do not change the defaults when loading config, only override
// explicitly set fields.
type Config struct {
	PauseThreshold float64
	MinRepInterval time.Duration
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		PauseThreshold: defaultPauseThreshold,
		MinRepInterval: defaultMinRepInterval,
	}
}

func (c Config) withDefaults() Config {
	if c.PauseThreshold <= 0 {
		c.PauseThreshold = defaultPauseThreshold
	}
	if c.MinRepInterval <= 0 {
		c.MinRepInterval = defaultMinRepInterval
	}
	return c
}

// Observation is the tracker's per-frame output.
type Observation struct {
	Angles   JointAngles `json:"angles"`
	RawPhase Phase       `json:"raw_phase"`
	Phase    Phase       `json:"phase"`
	Reps     int         `json:"reps"`
}

// RepEvent is emitted once per completed repetition, carrying the angles of
// the frame that confirmed it, for the biomechanics feedback collaborator.
type RepEvent struct {
	Exercise models.ExerciseKind `json:"exercise"`
	Count    int                 `json:"count"`
	Angles   JointAngles         `json:"angles"`
	At       time.Time           `json:"at"`
}

// Tracker owns all mutable state for one exercise session: the motion
// history, the phase vote buffer, the confirmed phase, and the rep counter.
// It is not safe for concurrent use; the frame loop is its only caller.
type Tracker struct {
	exercise models.ExerciseKind
	profile  profile
	cfg      Config

	history   []float64
	votes     []Phase
	confirmed Phase
	reps      int
	lastRep   time.Time
}

// NewTracker creates a tracker for one session of the given exercise.
func NewTracker(exercise models.ExerciseKind, cfg Config) *Tracker {
	return &Tracker{
		exercise:  exercise,
		profile:   profileFor(exercise),
		cfg:       cfg.withDefaults(),
		history:   make([]float64, 0, historySize),
		votes:     make([]Phase, 0, voteSize),
		confirmed: PhaseStanding,
	}
}

// Exercise returns the session's exercise kind.
func (t *Tracker) Exercise() models.ExerciseKind { return t.exercise }

// Reps returns the current repetition count.
func (t *Tracker) Reps() int { return t.reps }

// Phase returns the current confirmed phase.
func (t *Tracker) Phase() Phase { return t.confirmed }

// Reset clears all session state: buffers emptied, phase back to standing,
// count to zero. Stale history must never leak into a new exercise.
func (t *Tracker) Reset() {
	t.history = t.history[:0]
	t.votes = t.votes[:0]
	t.confirmed = PhaseStanding
	t.reps = 0
	t.lastRep = time.Time{}
}

// Observe processes one landmark frame captured at the given time. It always
// returns the frame's observation; the RepEvent is non-nil only when this
// frame completed a repetition.
func (t *Tracker) Observe(f pose.Frame, at time.Time) (Observation, *RepEvent) {
	angles := ExtractAngles(f)

	raw := PhaseStanding
	if coord, ok := t.profile.reference(f); ok {
		t.push(coord)
		raw = t.profile.classify(t.history, t.cfg.PauseThreshold)
	}

	ev := t.vote(raw, angles, at)

	return Observation{
		Angles:   angles,
		RawPhase: raw,
		Phase:    t.confirmed,
		Reps:     t.reps,
	}, ev
}

// push appends one reference-coordinate sample, evicting the oldest once the
// history is full.
func (t *Tracker) push(coord float64) {
	if len(t.history) == historySize {
		copy(t.history, t.history[1:])
		t.history = t.history[:historySize-1]
	}
	t.history = append(t.history, coord)
}

// vote runs the stabilization state machine for one raw phase reading and
// returns a RepEvent if this frame completed a repetition.
func (t *Tracker) vote(raw Phase, angles JointAngles, at time.Time) *RepEvent {
	if len(t.votes) == voteSize {
		copy(t.votes, t.votes[1:])
		t.votes = t.votes[:voteSize-1]
	}
	t.votes = append(t.votes, raw)

	if len(t.votes) < voteWarmup {
		return nil
	}

	window := t.votes
	if len(window) > voteWindow {
		window = window[len(window)-voteWindow:]
	}
	tally := make(map[Phase]int, 3)
	for _, p := range window {
		tally[p]++
	}

	// Only the turnaround phases are worth debouncing into a confirmed
	// state; ascending/descending are transient by definition.
	var stable Phase
	switch {
	case tally[PhaseBottom] >= voteMin:
		stable = PhaseBottom
	case tally[PhaseTop] >= voteMin:
		stable = PhaseTop
	default:
		return nil
	}

	if stable == t.confirmed {
		return nil
	}

	// A repetition is completed only on the bottom→top edge: the athlete
	// returned to the start after the turnaround. The mirror edge never
	// counts. This holds for pull-type movements too (their hang is the
	// "bottom"); see the profile table orientation.
	if t.confirmed == PhaseBottom && stable == PhaseTop &&
		(t.lastRep.IsZero() || at.Sub(t.lastRep) >= t.cfg.MinRepInterval) {
		t.reps++
		t.confirmed = stable
		t.lastRep = at
		return &RepEvent{
			Exercise: t.exercise,
			Count:    t.reps,
			Angles:   angles,
			At:       at,
		}
	}

	t.confirmed = stable
	return nil
}
