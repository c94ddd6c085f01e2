package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/claude/repcoach/internal/feedback"
	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/motion"
	"github.com/google/uuid"
)

// liveSession is one in-progress exercise session. The tracker and its
// buffers are owned exclusively by this struct; the mutex serializes the
// frame loop against late-arriving feedback and lifecycle calls.
type liveSession struct {
	id        uuid.UUID
	exercise  models.ExerciseKind
	startedAt time.Time

	mu           sync.Mutex
	tracker      *motion.Tracker
	reps         []models.RepRow
	lastFeedback *feedback.Feedback
	lastFrameAt  time.Time
}

// applyFeedback stores the feedback service's latest verdict for the session.
func (ls *liveSession) applyFeedback(fb feedback.Feedback) {
	ls.mu.Lock()
	ls.lastFeedback = &fb
	ls.mu.Unlock()
}

// registry holds all live sessions by ID.
type registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*liveSession
}

func newRegistry() *registry {
	return &registry{sessions: make(map[uuid.UUID]*liveSession)}
}

// start creates a live session for the given exercise.
func (r *registry) start(exercise models.ExerciseKind, cfg motion.Config, now time.Time) *liveSession {
	ls := &liveSession{
		id:        uuid.New(),
		exercise:  exercise,
		startedAt: now,
		tracker:   motion.NewTracker(exercise, cfg),
	}
	r.mu.Lock()
	r.sessions[ls.id] = ls
	r.mu.Unlock()
	return ls
}

// get returns the live session with the given ID.
func (r *registry) get(id uuid.UUID) (*liveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ls, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no live session %s", id)
	}
	return ls, nil
}

// remove drops the live session with the given ID, returning it if present.
func (r *registry) remove(id uuid.UUID) (*liveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ls, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no live session %s", id)
	}
	delete(r.sessions, id)
	return ls, nil
}

// count returns the number of live sessions.
func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
