// Package tempo is a frame scheduler and property animation engine for
// single-threaded event loops.
//
// Tempo provides delayed and repeating work, per-frame callbacks,
// budget-sliced batch processing, easing transitions and an animator that
// drives many properties from one clock, all on one goroutine with no
// locking in the hot path.
//
// # Quick start
//
// A [Loop] is the reference host. [NewRuntime] wires the schedulers to it:
//
//	rt := tempo.NewRuntime(tempo.NewLoop())
//
//	a := tempo.NewAnimator[string, float64](rt.Scheduler, rt.Frames, rt.Clock())
//	a.Invoke("alpha", 0).
//		Using(tempo.Ease(0, 1, 300*time.Millisecond, ease.OutCubic)).
//		Then(tempo.Hold(1.0, time.Second)).
//		Then(tempo.Linear(1, 0, 200*time.Millisecond))
//	a.AddListener(&tempo.ListenerFuncs[string, float64]{
//		OnChanged: func(_ *tempo.Animator[string, float64], c map[string]tempo.Change[string, float64]) {
//			sprite.Alpha = c["alpha"].New
//		},
//	})
//	a.Start()
//
//	rt.Loop.Run(ctx)
//
// Hosts that already own a frame signal call [Loop.Frame] from it instead of
// [Loop.Run]. See the ebitenhost and teahost packages.
//
// # Scheduling
//
// [Scheduler.After] and [Scheduler.Every] run jobs on the loop after a delay.
// A zero delay always waits for the next frame, never the current turn.
// [Scheduler.Delay] and [Scheduler.DelayUntil] suspend a computation and hand
// the rest of it to a continuation. [AnimationScheduler.OnNextFrame] runs a
// job once before the next repaint. Every call returns a [Task] that can be
// cancelled.
//
// # Strands
//
// A [Strand] runs a long sequence of jobs a frame budget at a time, resuming
// on the next frame when the budget is spent.
//
// # Transitions
//
// A [Transition] maps elapsed time to a [Moment]: a position and a velocity.
// Transitions clamp their input, so sampling before the start or after the
// end is always safe. Easing curves come from [gween]'s ease package.
// [Chain] plays transitions back to back; at an exact segment boundary the
// ending segment still owns the sample. [Repeat] and [RepeatForever] replay a
// transition, optionally reversing every other pass, and [KeyFrames] passes
// through values pinned at offsets.
//
// An [Animator] can be paused and resumed; the paused span does not count
// towards its elapsed time.
//
// # Debugging
//
// [SetDebugMode] logs per-turn loop timing, strand yields and rejected API
// misuse to stderr. Counters and histograms for the loop, strands and
// animators are exported by the metrics subpackage.
//
// [gween]: https://github.com/tanema/gween
package tempo
