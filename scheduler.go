package tempo

import (
	"context"
	"slices"
	"time"
)

// Scheduler issues delayed, repeating and suspension-style work on a host
// event loop. It owns no goroutine; every job runs on the loop goroutine
// that pumps the Host and the AnimationScheduler.
type Scheduler struct {
	host     Host
	frames   *AnimationScheduler
	clock    Clock
	epoch    time.Time
	shutdown bool
	polls    []*pollTask // outstanding DelayUntil calls, oldest first
}

// NewScheduler creates a scheduler. Zero-delay work is bound to frames so it
// lines up with repaint timing; everything else goes through host.
func NewScheduler(host Host, frames *AnimationScheduler, clock Clock) *Scheduler {
	if clock == nil {
		clock = frames.Clock()
	}
	return &Scheduler{
		host:   host,
		frames: frames,
		clock:  clock,
		epoch:  clock.Now(),
	}
}

// Now returns the time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.clock.Now().Sub(s.epoch)
}

type timerTask struct {
	taskState
}

// After runs job once, after at least d has elapsed, passing the time since
// the call. A non-positive d waits for the next frame instead of a
// zero-delay timer, so job never runs within the calling turn.
func (s *Scheduler) After(d time.Duration, job func(elapsed time.Duration)) Task {
	start := s.clock.Now()
	if d <= 0 {
		return s.frames.OnNextFrame(func(time.Duration) {
			job(s.clock.Now().Sub(start))
		})
	}

	t := &timerTask{}
	stop := s.host.AfterFunc(d, func() {
		if !t.finish() {
			return
		}
		job(s.clock.Now().Sub(start))
	})
	t.release = func() { stop() }
	return t
}

type recurringTask struct {
	taskState
}

// Every runs job repeatedly until the task is cancelled, passing the time
// since the previous invocation. The first invocation also waits d. Each
// firing re-arms before running job, so a slow job does not stretch the
// interval. A non-positive d repeats once per frame.
func (s *Scheduler) Every(d time.Duration, job func(elapsed time.Duration)) Task {
	t := &recurringTask{}
	last := s.clock.Now()

	var arm func()
	fire := func() {
		if t.done {
			return
		}
		now := s.clock.Now()
		elapsed := now.Sub(last)
		last = now
		arm()
		job(elapsed)
	}
	arm = func() {
		if d <= 0 {
			t.release = s.frames.OnNextFrame(func(time.Duration) { fire() }).Cancel
			return
		}
		stop := s.host.AfterFunc(d, fire)
		t.release = func() { stop() }
	}
	arm()
	return t
}

// Delay suspends a computation for d. resume is its continuation: it runs
// once with nil after the delay, or with ctx.Err() if ctx was done by then.
// Cancelling the returned task drops the continuation entirely.
func (s *Scheduler) Delay(ctx context.Context, d time.Duration, resume func(err error)) Task {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.After(d, func(time.Duration) {
		if err := ctx.Err(); err != nil {
			resume(err)
			return
		}
		resume(nil)
	})
}

type pollTask struct {
	taskState
	pending Task
	check   func()
}

// DelayUntil suspends a computation until predicate reports true. The
// predicate is polled once per frame with the time since the scheduler
// epoch. resume runs once: nil when the predicate passes, ctx.Err() when ctx
// is done at a poll, or ErrShutdown when a poll finds the scheduler shut
// down. A panicking predicate propagates to whoever pumps the frame.
func (s *Scheduler) DelayUntil(ctx context.Context, predicate func(now time.Duration) bool, resume func(err error)) Task {
	if ctx == nil {
		ctx = context.Background()
	}
	t := &pollTask{}
	s.polls = append(s.polls, t)

	arm := func() {
		t.pending = s.After(0, func(time.Duration) { t.check() })
	}
	t.check = func() {
		if t.done {
			return
		}
		var err error
		switch {
		case ctx.Err() != nil:
			err = ctx.Err()
		case predicate(s.Now()):
		case s.shutdown:
			debugf("DelayUntil poll stopped by scheduler shutdown")
			err = ErrShutdown
		default:
			arm()
			return
		}
		t.finish()
		s.dropPoll(t)
		resume(err)
	}
	t.release = func() {
		t.pending.Cancel()
		s.dropPoll(t)
	}
	arm()
	return t
}

func (s *Scheduler) dropPoll(t *pollTask) {
	s.polls = slices.DeleteFunc(s.polls, func(p *pollTask) bool { return p == t })
}

// finalPoll runs one last poll of every outstanding DelayUntil right away.
// After Shutdown each of them resolves: resume sees nil if its predicate
// passes and ErrShutdown otherwise. Runtime calls it before the loop drops
// the frame requests the polls wait on.
func (s *Scheduler) finalPoll() {
	for _, t := range slices.Clone(s.polls) {
		if t.done {
			continue
		}
		t.pending.Cancel()
		t.check()
	}
}

// Shutdown makes the scheduler inert. Polls started by DelayUntil stop
// rescheduling themselves at their next check. Tasks already handed out
// keep running.
func (s *Scheduler) Shutdown() {
	s.shutdown = true
}

// IsShutdown reports whether Shutdown has been called.
func (s *Scheduler) IsShutdown() bool {
	return s.shutdown
}
