package tempo

import (
	"math"
	"time"
)

// Forever is the duration of a transition that never ends. A chain holding
// one never completes; its animator runs until cancelled.
const Forever = time.Duration(math.MaxInt64)

// RepeatMode selects how a repeated transition starts each new play.
type RepeatMode uint8

const (
	// RepeatRestart jumps back to the start of the transition.
	RepeatRestart RepeatMode = iota
	// RepeatReverse plays every other pass backwards, so the value swings
	// between the two ends without jumping.
	RepeatReverse
)

type repeated[T any] struct {
	t     Transition[T]
	times int // extra plays; negative repeats forever
	mode  RepeatMode
	neg   func(T) T
}

// Repeat plays t once and then times more, so the result lasts
// (times+1)*t.Duration(). In RepeatReverse mode an odd times ends back at
// the start value. Put a Hold in front of it in a chain to delay it.
func Repeat(t Transition[float64], times int, mode RepeatMode) Transition[float64] {
	return repeated[float64]{t: t, times: max(times, 0), mode: mode, neg: negate}
}

// RepeatVector is Repeat for Vector values.
func RepeatVector[T Vector[T]](t Transition[T], times int, mode RepeatMode) Transition[T] {
	return repeated[T]{t: t, times: max(times, 0), mode: mode, neg: negateVector[T]}
}

// RepeatForever plays t over and over. Its duration is Forever.
func RepeatForever(t Transition[float64], mode RepeatMode) Transition[float64] {
	return repeated[float64]{t: t, times: -1, mode: mode, neg: negate}
}

// RepeatVectorForever is RepeatForever for Vector values.
func RepeatVectorForever[T Vector[T]](t Transition[T], mode RepeatMode) Transition[T] {
	return repeated[T]{t: t, times: -1, mode: mode, neg: negateVector[T]}
}

func negate(v float64) float64 { return -v }

func negateVector[T Vector[T]](v T) T { return v.Mul(-1) }

func (r repeated[T]) Duration() time.Duration {
	d := r.t.Duration()
	switch {
	case d <= 0:
		return 0
	case r.times < 0:
		return Forever
	case int64(r.times) >= int64(Forever/d):
		return Forever
	}
	return time.Duration(r.times+1) * d
}

// Value maps elapsed onto the current play. Like Chain, the instant where
// one play ends still belongs to that play.
func (r repeated[T]) Value(elapsed time.Duration) Moment[T] {
	d := r.t.Duration()
	if d <= 0 || elapsed <= 0 {
		return r.t.Value(elapsed)
	}

	play := int64((elapsed - 1) / d)
	if r.times >= 0 && play > int64(r.times) {
		play = int64(r.times)
	}
	local := min(elapsed-time.Duration(play)*d, d)

	if r.mode == RepeatReverse && play%2 == 1 {
		m := r.t.Value(d - local)
		m.Velocity = r.neg(m.Velocity)
		return m
	}
	return r.t.Value(local)
}
