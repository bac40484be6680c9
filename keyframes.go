package tempo

import (
	"slices"
	"time"

	"github.com/tanema/gween/ease"
)

// KeyFrame pins a value at an offset within a key-frame transition. Ease
// shapes the way from this frame to the next one; nil is linear.
type KeyFrame[T any] struct {
	At    time.Duration
	Value T
	Ease  ease.TweenFunc
}

// FrameAt places a frame at a fraction of the total duration d.
func FrameAt[T any](d time.Duration, fraction float64, value T, fn ease.TweenFunc) KeyFrame[T] {
	return KeyFrame[T]{At: time.Duration(float64(d) * fraction), Value: value, Ease: fn}
}

// KeyFrames transitions a float64 through frames over d. The value holds at
// the first frame until its offset and at the last frame after its offset.
// Offsets are clamped to [0, d], and when two frames share an offset the
// later one wins. With no frames the value stays at zero.
func KeyFrames(d time.Duration, frames ...KeyFrame[float64]) Transition[float64] {
	return keyFrames(d, frames, func(from, to float64, d time.Duration, fn ease.TweenFunc) Transition[float64] {
		if fn == nil {
			return Linear(from, to, d)
		}
		return Ease(from, to, d, fn)
	})
}

// KeyFramesVector is KeyFrames for Vector values.
func KeyFramesVector[T Vector[T]](d time.Duration, frames ...KeyFrame[T]) Transition[T] {
	return keyFrames(d, frames, EaseVector[T])
}

// keyFrames lays the frames out as a Chain: a hold up to the first frame,
// one span per pair of neighbouring frames, and a hold to the end.
func keyFrames[T any](d time.Duration, frames []KeyFrame[T], span func(from, to T, d time.Duration, fn ease.TweenFunc) Transition[T]) Transition[T] {
	d = max(d, 0)
	if len(frames) == 0 {
		var zero T
		return Hold(zero, d)
	}

	sorted := make([]KeyFrame[T], len(frames))
	for i, f := range frames {
		f.At = clampElapsed(f.At, d)
		sorted[i] = f
	}
	slices.SortStableFunc(sorted, func(a, b KeyFrame[T]) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	// Later frames replace earlier ones at the same offset.
	uniq := sorted[:0]
	for _, f := range sorted {
		if n := len(uniq); n > 0 && uniq[n-1].At == f.At {
			uniq[n-1] = f
			continue
		}
		uniq = append(uniq, f)
	}

	first, last := uniq[0], uniq[len(uniq)-1]
	segments := make([]Transition[T], 0, len(uniq)+1)
	segments = append(segments, Hold(first.Value, first.At))
	for i := 1; i < len(uniq); i++ {
		prev, next := uniq[i-1], uniq[i]
		segments = append(segments, span(prev.Value, next.Value, next.At-prev.At, prev.Ease))
	}
	segments = append(segments, Hold(last.Value, d-last.At))

	c, _ := NewChain(segments...) // never empty
	return c
}
