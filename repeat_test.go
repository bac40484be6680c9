package tempo

import (
	"math"
	"testing"
	"time"
)

func TestRepeatRestart(t *testing.T) {
	r := Repeat(Linear(0, 10, 100*time.Millisecond), 2, RepeatRestart)
	if r.Duration() != 300*time.Millisecond {
		t.Fatalf("Duration = %v, want 300ms", r.Duration())
	}
	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0},
		{50 * time.Millisecond, 5},
		{100 * time.Millisecond, 10}, // end of the first play
		{150 * time.Millisecond, 5},
		{250 * time.Millisecond, 5},
		{300 * time.Millisecond, 10},
		{time.Hour, 10},
	}
	for _, tt := range tests {
		if got := r.Value(tt.elapsed).Position; !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("Value(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestRepeatReverse(t *testing.T) {
	r := Repeat(Linear(0, 10, 100*time.Millisecond), 1, RepeatReverse)
	if r.Duration() != 200*time.Millisecond {
		t.Fatalf("Duration = %v, want 200ms", r.Duration())
	}
	if got := r.Value(100 * time.Millisecond).Position; got != 10 {
		t.Errorf("Value(100ms) = %v, want 10", got)
	}
	m := r.Value(150 * time.Millisecond)
	if !approxEqual(m.Position, 5, 1e-9) || !approxEqual(m.Velocity, -100, 1e-6) {
		t.Errorf("Value(150ms) = %+v, want position 5 moving at -100/s", m)
	}
	if got := r.Value(200 * time.Millisecond).Position; got != 0 {
		t.Errorf("Value(200ms) = %v, want 0 (an odd repeat ends at the start)", got)
	}
}

func TestRepeatEdgeCases(t *testing.T) {
	lin := Linear(0, 10, 100*time.Millisecond)
	if d := Repeat(lin, -4, RepeatRestart).Duration(); d != 100*time.Millisecond {
		t.Errorf("negative times: Duration = %v, want one play", d)
	}
	if d := Repeat(lin, math.MaxInt, RepeatRestart).Duration(); d != Forever {
		t.Errorf("huge times: Duration = %v, want Forever", d)
	}
	zero := Repeat(Hold(3.0, 0), 5, RepeatReverse)
	if zero.Duration() != 0 || zero.Value(time.Second).Position != 3 {
		t.Errorf("zero-length play: Duration %v, Value %v", zero.Duration(), zero.Value(time.Second).Position)
	}
}

func TestRepeatForever(t *testing.T) {
	lin := Linear(0, 10, 100*time.Millisecond)
	restart := RepeatForever(lin, RepeatRestart)
	if restart.Duration() != Forever {
		t.Fatalf("Duration = %v, want Forever", restart.Duration())
	}
	if got := restart.Value(1234 * time.Millisecond).Position; !approxEqual(got, 3.4, 1e-9) {
		t.Errorf("restart Value(1234ms) = %v, want 3.4", got)
	}

	reverse := RepeatForever(lin, RepeatReverse)
	if got := reverse.Value(250 * time.Millisecond).Position; !approxEqual(got, 5, 1e-9) {
		t.Errorf("reverse Value(250ms) = %v, want 5", got)
	}
	if got := reverse.Value(330 * time.Millisecond).Position; !approxEqual(got, 7, 1e-9) {
		t.Errorf("reverse Value(330ms) = %v, want 7", got)
	}
}

func TestRepeatVectorReverse(t *testing.T) {
	r := RepeatVector(LinearVector(Vec2{}, Vec2{X: 10, Y: 20}, 100*time.Millisecond), 1, RepeatReverse)
	m := r.Value(150 * time.Millisecond)
	if !approxEqual(m.Position.X, 5, 1e-9) || !approxEqual(m.Position.Y, 10, 1e-9) {
		t.Errorf("Position = %+v, want {5 10}", m.Position)
	}
	if m.Velocity.X >= 0 || m.Velocity.Y >= 0 {
		t.Errorf("Velocity = %+v, want both components negative", m.Velocity)
	}
	if got := RepeatVectorForever(LinearVector(Vec2{}, Vec2{X: 1}, time.Second), RepeatRestart).Duration(); got != Forever {
		t.Errorf("RepeatVectorForever Duration = %v, want Forever", got)
	}
}
