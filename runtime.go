package tempo

// Runtime bundles a Loop with the scheduling components built on top of it.
// The Loop is both the frame source and the fallback timer host, and every
// component reads the Loop's clock.
type Runtime struct {
	Loop      *Loop
	Frames    *AnimationScheduler
	Scheduler *Scheduler
	Strand    *Strand
}

// NewRuntime wires schedulers and a strand to loop.
func NewRuntime(loop *Loop, opts ...StrandOption) *Runtime {
	clock := loop.Clock()
	frames := NewAnimationScheduler(loop, loop, clock)
	return &Runtime{
		Loop:      loop,
		Frames:    frames,
		Scheduler: NewScheduler(loop, frames, clock),
		Strand:    NewStrand(frames, clock, opts...),
	}
}

// Clock returns the clock shared by the runtime's components.
func (r *Runtime) Clock() Clock {
	return r.Loop.Clock()
}

// Shutdown makes the scheduler inert and stops the loop. Outstanding
// DelayUntil calls get one final poll first, so each of them resumes,
// with ErrShutdown unless its predicate already holds.
func (r *Runtime) Shutdown() {
	r.Scheduler.Shutdown()
	r.Scheduler.finalPoll()
	r.Loop.Shutdown()
}
