package tempo

import (
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/phanxgames/tempo/metrics"
)

// State is the lifecycle position of an Animator's current run.
type State uint8

const (
	StateIdle      State = iota // nothing scheduled yet
	StateScheduled              // waiting for the first tick
	StateRunning                // ticking every frame
	StateCompleted              // every chain reached its end
	StateCancelled              // stopped by Cancel
	StatePaused                 // frozen by Pause until Resume
)

var stateNames = [...]string{"idle", "scheduled", "running", "completed", "cancelled", "paused"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Change is one property's move within a tick.
type Change[P comparable, T any] struct {
	Property P
	Old, New T
}

// Listener observes an Animator. Changed receives every property that moved
// during one tick in a single batch, so coupled properties are never seen
// half-updated.
type Listener[P comparable, T comparable] interface {
	Changed(a *Animator[P, T], changes map[P]Change[P, T])
	Completed(a *Animator[P, T])
	Cancelled(a *Animator[P, T])
}

// PauseListener is implemented by listeners that also want to hear about
// Pause and Resume. Animator checks for it on every registered Listener.
type PauseListener[P comparable, T comparable] interface {
	Paused(a *Animator[P, T])
	Resumed(a *Animator[P, T])
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
// Register it by pointer so RemoveListener can find it again.
type ListenerFuncs[P comparable, T comparable] struct {
	OnChanged   func(a *Animator[P, T], changes map[P]Change[P, T])
	OnCompleted func(a *Animator[P, T])
	OnCancelled func(a *Animator[P, T])
	OnPaused    func(a *Animator[P, T])
	OnResumed   func(a *Animator[P, T])
}

func (l *ListenerFuncs[P, T]) Changed(a *Animator[P, T], changes map[P]Change[P, T]) {
	if l.OnChanged != nil {
		l.OnChanged(a, changes)
	}
}

func (l *ListenerFuncs[P, T]) Completed(a *Animator[P, T]) {
	if l.OnCompleted != nil {
		l.OnCompleted(a)
	}
}

func (l *ListenerFuncs[P, T]) Cancelled(a *Animator[P, T]) {
	if l.OnCancelled != nil {
		l.OnCancelled(a)
	}
}

func (l *ListenerFuncs[P, T]) Paused(a *Animator[P, T]) {
	if l.OnPaused != nil {
		l.OnPaused(a)
	}
}

func (l *ListenerFuncs[P, T]) Resumed(a *Animator[P, T]) {
	if l.OnResumed != nil {
		l.OnResumed(a)
	}
}

// draft is a property's chain while it is still being built. A session
// seals every draft it reads; sealed drafts reject further transitions.
type draft[T any] struct {
	initial     T
	transitions []Transition[T]
	sealed      bool
	err         error
}

func (d *draft[T]) add(t Transition[T]) {
	if d.err != nil {
		return
	}
	if d.sealed {
		d.err = ErrChainSealed
		debugWarnf("transition added to a chain already consumed by a session; ignored")
		return
	}
	d.transitions = append(d.transitions, t)
}

// Initial is returned by Animator.Invoke; call Using to give the property
// its first transition.
type Initial[P comparable, T any] struct {
	d *draft[T]
}

// Using appends the first transition of the chain.
func (i *Initial[P, T]) Using(t Transition[T]) *Builder[P, T] {
	i.d.add(t)
	return &Builder[P, T]{d: i.d}
}

// Builder extends a property's chain.
type Builder[P comparable, T any] struct {
	d *draft[T]
}

// Then appends a transition that starts where the previous one ends.
func (b *Builder[P, T]) Then(t Transition[T]) *Builder[P, T] {
	b.d.add(t)
	return b
}

// Err reports whether the builder was rejected: ErrAnimatorRunning if it was
// obtained while a session was in flight, ErrChainSealed if a session had
// already consumed it when a transition was added.
func (b *Builder[P, T]) Err() error {
	return b.d.err
}

// track is a property's runtime state within a session.
type track[T any] struct {
	chain *Chain[T]
	last  T
}

// Animator drives per-property transition chains from clock time. Build
// chains with Invoke, then Start or Schedule. Each tick samples every active
// chain at the session's elapsed time, publishes one batched Changed
// notification, drops properties whose chains have ended, and fires
// Completed once none remain.
//
// An Animator belongs to the loop goroutine, like the schedulers it uses.
type Animator[P comparable, T comparable] struct {
	sched  *Scheduler
	frames *AnimationScheduler
	clock  Clock

	drafts    map[P]*draft[T]
	order     []P
	listeners []Listener[P, T]

	id     uuid.UUID
	state  State
	gen    uint64
	task   Task
	due    time.Time // when a scheduled session starts
	start  time.Time
	active map[P]*track[T]

	pausedAt   time.Time
	pausedFrom State
	live   []P // active keys in invocation order
}

// NewAnimator creates an idle animator. sched provides the start delay and
// frames the per-tick signal; both must share clock.
func NewAnimator[P comparable, T comparable](sched *Scheduler, frames *AnimationScheduler, clock Clock) *Animator[P, T] {
	if clock == nil {
		clock = frames.Clock()
	}
	return &Animator[P, T]{
		sched:  sched,
		frames: frames,
		clock:  clock,
		drafts: make(map[P]*draft[T]),
	}
}

// Invoke starts a new chain for property, replacing any chain built for it
// before. initial is the value the first Changed reports as Old. While a
// session is in flight the returned builder is inert and reports
// ErrAnimatorRunning.
func (a *Animator[P, T]) Invoke(property P, initial T) *Initial[P, T] {
	if a.Running() {
		debugWarnf("animator %s: Invoke during a running session; ignored", a.id)
		return &Initial[P, T]{d: &draft[T]{initial: initial, sealed: true, err: ErrAnimatorRunning}}
	}
	d := &draft[T]{initial: initial}
	if _, ok := a.drafts[property]; !ok {
		a.order = append(a.order, property)
	}
	a.drafts[property] = d
	return &Initial[P, T]{d: d}
}

// ID identifies the current or most recent session. It changes on every
// Schedule and is the zero UUID before the first one.
func (a *Animator[P, T]) ID() uuid.UUID {
	return a.id
}

// State returns the lifecycle state of the current run.
func (a *Animator[P, T]) State() State {
	return a.state
}

// Running reports whether a session is in flight: scheduled, ticking or
// paused.
func (a *Animator[P, T]) Running() bool {
	switch a.state {
	case StateScheduled, StateRunning, StatePaused:
		return true
	}
	return false
}

// Paused reports whether the session is frozen by Pause.
func (a *Animator[P, T]) Paused() bool {
	return a.state == StatePaused
}

// Value returns the last published position of a property that is still
// animating.
func (a *Animator[P, T]) Value(property P) (T, bool) {
	tr, ok := a.active[property]
	if !ok {
		var zero T
		return zero, false
	}
	return tr.last, true
}

// AddListener registers l. Adding the same listener twice delivers events
// to it twice.
func (a *Animator[P, T]) AddListener(l Listener[P, T]) {
	a.listeners = append(a.listeners, l)
}

// RemoveListener unregisters the first registration of l. Listeners are
// matched with ==, so only comparable listeners (pointers, in practice) can
// be removed; for any other type RemoveListener does nothing.
func (a *Animator[P, T]) RemoveListener(l Listener[P, T]) {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		debugWarnf("RemoveListener with non-comparable %T; ignored", l)
		return
	}
	for i, existing := range a.listeners {
		if existing == l {
			a.listeners = slices.Delete(a.listeners, i, i+1)
			return
		}
	}
}

// Start is Schedule(0).
func (a *Animator[P, T]) Start() {
	a.Schedule(0)
}

// Schedule begins a session after the given delay. A zero delay starts on
// the next frame. Calling Schedule while a session is in flight does
// nothing; after completion or cancellation it starts a fresh session over
// the chains currently built.
func (a *Animator[P, T]) Schedule(after time.Duration) {
	if a.Running() {
		debugf("animator %s: Schedule while %s; ignored", a.id, a.state)
		return
	}

	a.gen++
	gen := a.gen
	a.id = uuid.New()
	a.active = make(map[P]*track[T], len(a.order))
	a.live = a.live[:0]
	for _, p := range a.order {
		d := a.drafts[p]
		d.sealed = true
		chain, err := NewChain(d.transitions...)
		if err != nil {
			continue
		}
		a.active[p] = &track[T]{chain: chain, last: d.initial}
		a.live = append(a.live, p)
	}

	a.state = StateScheduled
	a.due = a.clock.Now().Add(max(after, 0))
	debugf("animator %s: scheduled %d properties after %v", a.id, len(a.live), after)
	a.task = a.sched.After(after, a.begin(gen))
}

// begin returns the job that turns a scheduled session into a running one.
func (a *Animator[P, T]) begin(gen uint64) func(time.Duration) {
	return func(time.Duration) {
		if a.gen != gen {
			return
		}
		a.start = a.clock.Now()
		a.state = StateRunning
		a.tick(gen)
	}
}

// Pause freezes the session. No tick runs and no notification other than
// Paused is delivered until Resume. The paused span is excluded from the
// session's elapsed time, and a pending start delay keeps its remainder.
// Pausing an animator that is not running or scheduled does nothing.
func (a *Animator[P, T]) Pause() {
	if a.state != StateScheduled && a.state != StateRunning {
		return
	}
	a.gen++
	if a.task != nil {
		a.task.Cancel()
		a.task = nil
	}
	a.pausedAt = a.clock.Now()
	a.pausedFrom = a.state
	a.state = StatePaused

	debugf("animator %s: paused", a.id)
	for _, l := range slices.Clone(a.listeners) {
		if pl, ok := l.(PauseListener[P, T]); ok {
			pl.Paused(a)
		}
	}
}

// Resume continues a paused session from where it stopped. Resuming an
// animator that is not paused does nothing.
func (a *Animator[P, T]) Resume() {
	if a.state != StatePaused {
		return
	}
	a.gen++
	gen := a.gen
	now := a.clock.Now()
	a.state = a.pausedFrom

	if a.state == StateScheduled {
		remaining := a.due.Sub(a.pausedAt)
		a.due = now.Add(remaining)
		a.task = a.sched.After(remaining, a.begin(gen))
	} else {
		a.start = a.start.Add(now.Sub(a.pausedAt))
		a.task = a.frames.OnNextFrame(a.nextTick(gen))
	}

	debugf("animator %s: resumed after %v", a.id, now.Sub(a.pausedAt))
	for _, l := range slices.Clone(a.listeners) {
		if pl, ok := l.(PauseListener[P, T]); ok {
			pl.Resumed(a)
		}
	}
}

// Cancel stops the session immediately and notifies Cancelled. No Changed
// or Completed notification follows. Cancelling an animator that is not
// running does nothing.
func (a *Animator[P, T]) Cancel() {
	if !a.Running() {
		return
	}
	a.gen++
	if a.task != nil {
		a.task.Cancel()
		a.task = nil
	}
	a.state = StateCancelled
	a.active = nil
	a.live = a.live[:0]

	metrics.Animations.WithLabelValues("cancelled").Inc()
	debugf("animator %s: cancelled", a.id)
	for _, l := range slices.Clone(a.listeners) {
		l.Cancelled(a)
	}
}

func (a *Animator[P, T]) tick(gen uint64) {
	metrics.AnimationTicks.Inc()
	elapsed := a.clock.Now().Sub(a.start)

	var batch map[P]Change[P, T]
	for _, p := range a.live {
		tr := a.active[p]
		m, _ := tr.chain.At(elapsed)
		if m.Position == tr.last {
			continue
		}
		if batch == nil {
			batch = make(map[P]Change[P, T])
		}
		batch[p] = Change[P, T]{Property: p, Old: tr.last, New: m.Position}
		tr.last = m.Position
	}

	if len(batch) > 0 {
		for _, l := range slices.Clone(a.listeners) {
			l.Changed(a, batch)
			if a.gen != gen {
				// A listener cancelled, paused or restarted the animator.
				return
			}
		}
	}

	kept := a.live[:0]
	for _, p := range a.live {
		if elapsed >= a.active[p].chain.Duration() {
			delete(a.active, p)
			continue
		}
		kept = append(kept, p)
	}
	a.live = kept

	if len(a.live) == 0 {
		a.complete()
		return
	}
	a.task = a.frames.OnNextFrame(a.nextTick(gen))
}

func (a *Animator[P, T]) nextTick(gen uint64) func(time.Duration) {
	return func(time.Duration) {
		if a.gen != gen {
			return
		}
		a.tick(gen)
	}
}

func (a *Animator[P, T]) complete() {
	a.task = nil
	a.state = StateCompleted
	a.active = nil

	metrics.Animations.WithLabelValues("completed").Inc()
	debugf("animator %s: completed after %v", a.id, a.clock.Now().Sub(a.start))
	for _, l := range slices.Clone(a.listeners) {
		l.Completed(a)
	}
}
