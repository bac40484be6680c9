package tempo

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Moment is an instantaneous sample of an animated value: where it is and
// how fast it is moving, in units of T per second.
type Moment[T any] struct {
	Position T
	Velocity T
}

// Transition maps time elapsed within itself to a Moment. Implementations
// must be pure: Value(e) for e <= 0 equals Value(0), and Value(e) for
// e >= Duration() equals Value(Duration()).
//
// New kinds are added by implementing this interface; nothing in tempo
// switches on concrete transition types.
type Transition[T any] interface {
	Duration() time.Duration
	Value(elapsed time.Duration) Moment[T]
}

// clampElapsed limits elapsed to [0, d].
func clampElapsed(elapsed, d time.Duration) time.Duration {
	switch {
	case elapsed < 0:
		return 0
	case elapsed > d:
		return d
	}
	return elapsed
}

// slopeStep is the central-difference half width, as a fraction of the
// transition duration.
const slopeStep = 1e-3

// progress evaluates an easing curve at elapsed (already clamped, d > 0).
// It returns the eased fraction and its rate of change per second. The ends
// are pinned to exactly 0 and 1. A nil fn is exact float64 linear.
func progress(fn ease.TweenFunc, elapsed, d time.Duration) (p, slope float64) {
	ds := d.Seconds()
	if fn == nil {
		p = float64(elapsed) / float64(d)
		slope = 1 / ds
	} else {
		at := func(s float64) float64 {
			return float64(fn(float32(s), 0, 1, float32(ds)))
		}
		t := elapsed.Seconds()
		h := ds * slopeStep
		lo, hi := math.Max(t-h, 0), math.Min(t+h, ds)
		p = at(t)
		slope = (at(hi) - at(lo)) / (hi - lo)
	}
	switch elapsed {
	case 0:
		p = 0
	case d:
		p = 1
	}
	return p, slope
}

// lerp interpolates between from and to, returning the endpoints exactly at
// p == 0 and p == 1.
func lerp(from, to, p float64) float64 {
	switch p {
	case 0:
		return from
	case 1:
		return to
	}
	return from + (to-from)*p
}

type eased struct {
	from, to float64
	d        time.Duration
	fn       ease.TweenFunc
}

// Ease transitions a float64 from one value to another over d along an
// easing curve from gween's ease package.
func Ease(from, to float64, d time.Duration, fn ease.TweenFunc) Transition[float64] {
	if fn == nil {
		fn = ease.Linear
	}
	return eased{from: from, to: to, d: d, fn: fn}
}

// Linear transitions a float64 at constant speed.
func Linear(from, to float64, d time.Duration) Transition[float64] {
	return eased{from: from, to: to, d: d}
}

// FixedSpeed transitions a float64 linearly at unitsPerSecond, deriving the
// duration from the distance. A non-positive speed jumps straight to to.
func FixedSpeed(from, to, unitsPerSecond float64) Transition[float64] {
	var d time.Duration
	if unitsPerSecond > 0 {
		d = time.Duration(math.Abs(to-from) / unitsPerSecond * float64(time.Second))
	}
	return eased{from: from, to: to, d: d}
}

func (e eased) Duration() time.Duration { return e.d }

func (e eased) Value(elapsed time.Duration) Moment[float64] {
	if e.d <= 0 {
		return Moment[float64]{Position: e.to}
	}
	p, slope := progress(e.fn, clampElapsed(elapsed, e.d), e.d)
	return Moment[float64]{
		Position: lerp(e.from, e.to, p),
		Velocity: (e.to - e.from) * slope,
	}
}

type held[T any] struct {
	value T
	d     time.Duration
}

// Hold keeps value unchanged for d. Chained between two transitions it acts
// as a pause.
func Hold[T any](value T, d time.Duration) Transition[T] {
	return held[T]{value: value, d: d}
}

func (h held[T]) Duration() time.Duration { return h.d }

func (h held[T]) Value(time.Duration) Moment[T] {
	return Moment[T]{Position: h.value}
}

type easedVector[T Vector[T]] struct {
	from, to T
	d        time.Duration
	fn       ease.TweenFunc
}

// EaseVector transitions a Vector value (Vec2, Color, ...) along an easing
// curve. A nil fn is linear.
func EaseVector[T Vector[T]](from, to T, d time.Duration, fn ease.TweenFunc) Transition[T] {
	return easedVector[T]{from: from, to: to, d: d, fn: fn}
}

// LinearVector transitions a Vector value at constant speed.
func LinearVector[T Vector[T]](from, to T, d time.Duration) Transition[T] {
	return easedVector[T]{from: from, to: to, d: d}
}

func (e easedVector[T]) Duration() time.Duration { return e.d }

func (e easedVector[T]) Value(elapsed time.Duration) Moment[T] {
	if e.d <= 0 {
		return Moment[T]{Position: e.to}
	}
	p, slope := progress(e.fn, clampElapsed(elapsed, e.d), e.d)
	change := e.to.Sub(e.from)
	var pos T
	switch p {
	case 0:
		pos = e.from
	case 1:
		pos = e.to
	default:
		pos = e.from.Add(change.Mul(p))
	}
	return Moment[T]{Position: pos, Velocity: change.Mul(slope)}
}

// tween adapts a gween tween. gween keeps the last sample inside the tween,
// but Set derives it from the time argument alone, so Value stays a pure
// function of elapsed.
type tween struct {
	tw       *gween.Tween
	from, to float64
	d        time.Duration
}

// Tween transitions a float64 with a gween.Tween under the hood. It matches
// Ease except that gween evaluates in float32.
func Tween(from, to float64, d time.Duration, fn ease.TweenFunc) Transition[float64] {
	if fn == nil {
		fn = ease.Linear
	}
	return &tween{
		tw:   gween.New(float32(from), float32(to), float32(d.Seconds()), fn),
		from: from,
		to:   to,
		d:    d,
	}
}

func (t *tween) Duration() time.Duration { return t.d }

func (t *tween) Value(elapsed time.Duration) Moment[float64] {
	if t.d <= 0 {
		return Moment[float64]{Position: t.to}
	}
	elapsed = clampElapsed(elapsed, t.d)

	ds := t.d.Seconds()
	s := elapsed.Seconds()
	h := ds * slopeStep
	lo, hi := math.Max(s-h, 0), math.Min(s+h, ds)
	vlo, _ := t.tw.Set(float32(lo))
	vhi, _ := t.tw.Set(float32(hi))
	velocity := float64(vhi-vlo) / (hi - lo)

	var pos float64
	switch elapsed {
	case 0:
		pos = t.from
	case t.d:
		pos = t.to
	default:
		cur, _ := t.tw.Set(float32(s))
		pos = float64(cur)
	}
	return Moment[float64]{Position: pos, Velocity: velocity}
}
