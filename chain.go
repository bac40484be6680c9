package tempo

import (
	"sort"
	"time"
)

// Chain plays transitions back to back. Each segment starts where the
// previous one's duration ends. A Chain is immutable and is itself a
// Transition, so chains nest.
//
// Boundary rule: segment i owns the half-open span (start_i, end_i], and
// segment 0 also owns 0. At exactly the end of a segment the chain still
// reports that segment's terminal value; the next segment takes over once
// elapsed strictly exceeds the boundary. The end of the chain is the
// exception: from Duration() on the last segment answers, so zero-length
// segments at the tail still decide the final value.
type Chain[T any] struct {
	segments []Transition[T]
	ends     []time.Duration // cumulative end offsets
}

// NewChain builds a chain from one or more transitions.
func NewChain[T any](transitions ...Transition[T]) (*Chain[T], error) {
	if len(transitions) == 0 {
		return nil, ErrEmptyChain
	}
	c := &Chain[T]{
		segments: make([]Transition[T], len(transitions)),
		ends:     make([]time.Duration, len(transitions)),
	}
	copy(c.segments, transitions)

	var total time.Duration
	for i, t := range c.segments {
		if d := t.Duration(); d > 0 {
			total = addSaturating(total, d)
		}
		c.ends[i] = total
	}
	return c, nil
}

// Len returns the number of segments.
func (c *Chain[T]) Len() int { return len(c.segments) }

// Segment returns the i-th transition.
func (c *Chain[T]) Segment(i int) Transition[T] { return c.segments[i] }

// Duration returns the sum of the segment durations.
func (c *Chain[T]) Duration() time.Duration {
	return c.ends[len(c.ends)-1]
}

// Value implements Transition.
func (c *Chain[T]) Value(elapsed time.Duration) Moment[T] {
	m, _ := c.At(elapsed)
	return m
}

// At evaluates the chain at elapsed and reports which segment produced the
// sample. From the chain's end onwards the last segment supplies its
// terminal value, even when trailing segments take no time.
func (c *Chain[T]) At(elapsed time.Duration) (Moment[T], int) {
	if elapsed < 0 {
		elapsed = 0
	}
	last := len(c.ends) - 1
	i := last
	if elapsed < c.ends[last] {
		i = sort.Search(last, func(i int) bool { return c.ends[i] >= elapsed })
	}
	var start time.Duration
	if i > 0 {
		start = c.ends[i-1]
	}
	return c.segments[i].Value(elapsed - start), i
}

// addSaturating adds durations, stopping at Forever.
func addSaturating(a, b time.Duration) time.Duration {
	if a > Forever-b {
		return Forever
	}
	return a + b
}
