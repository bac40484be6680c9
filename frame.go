package tempo

import "time"

// AnimationScheduler runs jobs once before the next repaint. It is the only
// component with access to the host's per-frame signal; animator ticking and
// strand slicing are built by re-requesting OnNextFrame.
type AnimationScheduler struct {
	frames   FrameSource
	fallback Host
	clock    Clock
	epoch    time.Time
}

// NewAnimationScheduler creates a scheduler on the given frame source. When
// frames is nil the host has no frame signal and jobs run through a
// zero-delay fallback timer instead, so they still fire eventually.
func NewAnimationScheduler(frames FrameSource, fallback Host, clock Clock) *AnimationScheduler {
	if frames == nil && fallback == nil {
		panic("tempo: NewAnimationScheduler needs a FrameSource or a fallback Host")
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &AnimationScheduler{
		frames:   frames,
		fallback: fallback,
		clock:    clock,
		epoch:    clock.Now(),
	}
}

// Clock returns the scheduler's clock.
func (s *AnimationScheduler) Clock() Clock {
	return s.clock
}

// Now returns the time elapsed since the scheduler was created.
func (s *AnimationScheduler) Now() time.Duration {
	return s.clock.Now().Sub(s.epoch)
}

type frameTask struct {
	taskState
}

// OnNextFrame runs job exactly once before the next repaint, passing the
// frame time relative to the scheduler epoch. Cancelling the task before the
// frame fires prevents the call.
func (s *AnimationScheduler) OnNextFrame(job func(now time.Duration)) Task {
	t := &frameTask{}
	if s.frames == nil {
		stop := s.fallback.AfterFunc(0, func() {
			if !t.finish() {
				return
			}
			job(s.Now())
		})
		t.release = func() { stop() }
		return t
	}

	t.release = s.frames.RequestFrame(func(frameTime time.Time) {
		if !t.finish() {
			return
		}
		job(frameTime.Sub(s.epoch))
	})
	return t
}
