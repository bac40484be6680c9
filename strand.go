package tempo

import (
	"iter"
	"slices"
	"time"

	"github.com/phanxgames/tempo/metrics"
)

// DefaultFrameBudget is how long a strand may run jobs in a single turn.
const DefaultFrameBudget = time.Second / 60

// StrandOption configures a Strand.
type StrandOption func(*Strand)

// WithFrameBudget sets the per-turn time budget. Non-positive values keep
// the default.
func WithFrameBudget(d time.Duration) StrandOption {
	return func(s *Strand) {
		if d > 0 {
			s.budget = d
		}
	}
}

// Strand runs a long sequence of independent jobs without holding the loop
// for more than one frame budget per turn. Jobs run in sequence order,
// exactly once each. When the budget runs out the strand resumes from the
// same position on the next frame.
type Strand struct {
	frames *AnimationScheduler
	clock  Clock
	budget time.Duration
}

// NewStrand creates a strand that yields through frames and measures its
// budget with clock, which must be the clock the rest of the scheduler uses.
func NewStrand(frames *AnimationScheduler, clock Clock, opts ...StrandOption) *Strand {
	if clock == nil {
		clock = frames.Clock()
	}
	s := &Strand{
		frames: frames,
		clock:  clock,
		budget: DefaultFrameBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Budget returns the strand's per-turn budget.
func (s *Strand) Budget() time.Duration {
	return s.budget
}

// Run starts processing jobs immediately, within the calling turn. The
// returned task completes once the last job has run. An empty sequence
// completes before Run returns, without requesting a frame. Cancelling
// stops consumption of the sequence and drops any pending frame request.
func (s *Strand) Run(jobs iter.Seq[func()]) Task {
	next, stop := iter.Pull(jobs)
	t := &strandTask{strand: s, next: next, stop: stop}
	t.release = t.stopPull
	t.process()
	return t
}

// RunSlice is Run over a slice.
func (s *Strand) RunSlice(jobs []func()) Task {
	return s.Run(slices.Values(jobs))
}

type strandTask struct {
	taskState
	strand *Strand

	next    func() (func(), bool)
	stop    func()
	peeked  func()
	pending Task

	ran    int
	yields int
}

func (t *strandTask) stopPull() {
	if t.pending != nil {
		t.pending.Cancel()
		t.pending = nil
	}
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

// pull returns the next job, preferring one peeked at the end of the
// previous turn.
func (t *strandTask) pull() (func(), bool) {
	if t.peeked != nil {
		job := t.peeked
		t.peeked = nil
		return job, true
	}
	return t.next()
}

func (t *strandTask) complete() {
	t.stopPull()
	t.finish()
}

func (t *strandTask) process() {
	t.pending = nil
	start := t.strand.clock.Now()
	ran := 0
	defer func() {
		t.ran += ran
		metrics.StrandJobs.Add(float64(ran))
	}()

	for {
		job, ok := t.pull()
		if !ok {
			t.complete()
			return
		}
		job()
		ran++
		if t.done {
			// A job cancelled its own strand.
			return
		}
		if t.strand.clock.Now().Sub(start) < t.strand.budget {
			continue
		}

		// Out of budget. Only come back if there is more work.
		if t.peeked, ok = t.next(); !ok {
			t.complete()
			return
		}
		t.yields++
		metrics.StrandYields.Inc()
		debugf("strand yielded after %d jobs (%v budget)", ran, t.strand.budget)
		t.pending = t.strand.frames.OnNextFrame(func(time.Duration) {
			if t.done {
				return
			}
			t.process()
		})
		return
	}
}
