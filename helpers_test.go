package tempo

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2024, 3, 29, 12, 0, 0, 0, time.UTC)

// harness is a runtime on a manual clock. Nothing happens until step.
type harness struct {
	*Runtime
	clock *ManualClock
}

func newHarness(t *testing.T, opts ...StrandOption) *harness {
	t.Helper()
	clock := NewManualClock(testEpoch)
	loop := NewLoop(WithClock(clock))
	return &harness{Runtime: NewRuntime(loop, opts...), clock: clock}
}

// step advances the clock by d and runs one loop turn.
func (h *harness) step(d time.Duration) {
	h.clock.Advance(d)
	h.Loop.Frame()
}

// recorder is a Listener that keeps every notification.
type recorder[P comparable, T comparable] struct {
	batches   []map[P]Change[P, T]
	completed int
	cancelled int
	paused    int
	resumed   int
}

func (r *recorder[P, T]) Changed(_ *Animator[P, T], changes map[P]Change[P, T]) {
	cp := make(map[P]Change[P, T], len(changes))
	for k, v := range changes {
		cp[k] = v
	}
	r.batches = append(r.batches, cp)
}

func (r *recorder[P, T]) Completed(*Animator[P, T]) { r.completed++ }
func (r *recorder[P, T]) Cancelled(*Animator[P, T]) { r.cancelled++ }
func (r *recorder[P, T]) Paused(*Animator[P, T]) { r.paused++ }
func (r *recorder[P, T]) Resumed(*Animator[P, T]) { r.resumed++ }

func newFloatAnimator(h *harness) *Animator[string, float64] {
	return NewAnimator[string, float64](h.Scheduler, h.Frames, h.clock)
}
