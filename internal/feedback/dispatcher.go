package feedback

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/claude/repcoach/internal/motion"
)

// Evaluator is the one method the dispatcher needs from the feedback service.
// Satisfied by *Client; tests substitute their own.
type Evaluator interface {
	Evaluate(ctx context.Context, ev motion.RepEvent) (*Feedback, error)
}

// Dispatcher fires rep events at the feedback service without blocking the
// frame loop. Each dispatch is tagged with the session's current generation;
// a session reset bumps the generation, so a slow response that arrives after
// the reset is dropped instead of being applied to the wrong session.
type Dispatcher struct {
	eval Evaluator
	log  *slog.Logger

	gen atomic.Uint64
	wg  sync.WaitGroup
}

// NewDispatcher creates a dispatcher. eval may be nil, in which case every
// dispatch is a no-op (feedback disabled by config).
func NewDispatcher(eval Evaluator, log *slog.Logger) *Dispatcher {
	return &Dispatcher{eval: eval, log: log}
}

// Generation returns the current generation counter.
func (d *Dispatcher) Generation() uint64 {
	return d.gen.Load()
}

// Bump invalidates all in-flight dispatches. Call at every session start,
// reset, and end boundary.
func (d *Dispatcher) Bump() uint64 {
	return d.gen.Add(1)
}

// Dispatch evaluates a rep event asynchronously and calls apply with the
// result, unless the generation has moved on by then. Fire-and-forget: errors
// are logged, never returned, and never stall frame processing.
func (d *Dispatcher) Dispatch(ctx context.Context, ev motion.RepEvent, apply func(Feedback)) {
	if d.eval == nil {
		return
	}
	gen := d.gen.Load()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		fb, err := d.eval.Evaluate(ctx, ev)
		if err != nil {
			d.log.Warn("feedback evaluation failed", "rep", ev.Count, "error", err)
			return
		}
		if d.gen.Load() != gen {
			d.log.Debug("dropping stale feedback", "rep", ev.Count)
			return
		}
		apply(*fb)
	}()
}

// Wait blocks until all in-flight dispatches finish. For shutdown and tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
