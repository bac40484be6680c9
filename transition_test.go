package tempo

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// allTransitions returns one float64 transition of every kind.
func allTransitions() map[string]Transition[float64] {
	return map[string]Transition[float64]{
		"linear":      Linear(-3, 7, 200*time.Millisecond),
		"ease":        Ease(0, 1, 300*time.Millisecond, ease.InOutCubic),
		"ease-nil":    Ease(2, 4, 100*time.Millisecond, nil),
		"back":        Ease(0, 10, 500*time.Millisecond, ease.OutBack),
		"fixed-speed": FixedSpeed(0, 50, 100),
		"hold":        Hold(3.5, 80*time.Millisecond),
		"tween":       Tween(10, 20, 250*time.Millisecond, ease.OutQuad),
		"zero":        Linear(1, 2, 0),
		"repeat":      Repeat(Linear(0, 1, 40*time.Millisecond), 2, RepeatRestart),
		"reverse":     Repeat(Ease(0, 1, 40*time.Millisecond, ease.OutQuad), 3, RepeatReverse),
		"keyframes": KeyFrames(90*time.Millisecond,
			KeyFrame[float64]{At: 10 * time.Millisecond, Value: 2},
			KeyFrame[float64]{At: 50 * time.Millisecond, Value: -1, Ease: ease.InOutSine},
			KeyFrame[float64]{At: 90 * time.Millisecond, Value: 0},
		),
	}
}

// --- Contract ---

func TestTransitionClampedIdempotence(t *testing.T) {
	for name, tr := range allTransitions() {
		d := tr.Duration()
		start, end := tr.Value(0), tr.Value(d)
		for _, e := range []time.Duration{-1, -time.Millisecond, -time.Hour} {
			if got := tr.Value(e); got != start {
				t.Errorf("%s: Value(%v) = %+v, want Value(0) = %+v", name, e, got, start)
			}
		}
		for _, e := range []time.Duration{d + 1, d + time.Millisecond, d + time.Hour} {
			if got := tr.Value(e); got != end {
				t.Errorf("%s: Value(%v) = %+v, want Value(D) = %+v", name, e, got, end)
			}
		}
	}
}

func TestTransitionEndpointsExact(t *testing.T) {
	tests := []struct {
		name     string
		tr       Transition[float64]
		from, to float64
	}{
		{"linear", Linear(-3, 7, 200*time.Millisecond), -3, 7},
		{"ease", Ease(0.1, 0.7, 280*time.Millisecond, ease.InOutSine), 0.1, 0.7},
		{"elastic", Ease(0, 1, time.Second, ease.OutElastic), 0, 1},
		{"tween", Tween(0.1, 0.3, 280*time.Millisecond, ease.InQuad), 0.1, 0.3},
	}
	for _, tt := range tests {
		if got := tt.tr.Value(0).Position; got != tt.from {
			t.Errorf("%s: start = %v, want exactly %v", tt.name, got, tt.from)
		}
		if got := tt.tr.Value(tt.tr.Duration()).Position; got != tt.to {
			t.Errorf("%s: end = %v, want exactly %v", tt.name, got, tt.to)
		}
	}
}

// --- Kinds ---

func TestLinearMidpointAndVelocity(t *testing.T) {
	tr := Linear(0, 10, 2*time.Second)
	m := tr.Value(time.Second)
	if m.Position != 5 {
		t.Errorf("Position = %v, want 5", m.Position)
	}
	if m.Velocity != 5 {
		t.Errorf("Velocity = %v, want 5 units/s", m.Velocity)
	}
}

func TestEaseVelocityMatchesDerivative(t *testing.T) {
	// InQuad: p(t) = (t/d)^2, so dp/dt = 2t/d^2. At t = d/2 over 1s: 1/s.
	tr := Ease(0, 100, time.Second, ease.InQuad)
	m := tr.Value(500 * time.Millisecond)
	if !approxEqual(m.Position, 25, 1e-3) {
		t.Errorf("Position = %v, want 25", m.Position)
	}
	if !approxEqual(m.Velocity, 100, 0.1) {
		t.Errorf("Velocity = %v, want ~100", m.Velocity)
	}
}

func TestFixedSpeedDuration(t *testing.T) {
	tr := FixedSpeed(10, -10, 40)
	if tr.Duration() != 500*time.Millisecond {
		t.Errorf("Duration = %v, want 500ms", tr.Duration())
	}
	if got := tr.Value(250 * time.Millisecond).Position; got != 0 {
		t.Errorf("midpoint = %v, want 0", got)
	}

	jump := FixedSpeed(1, 2, 0)
	if jump.Duration() != 0 || jump.Value(0).Position != 2 {
		t.Errorf("zero speed: Duration = %v, Value = %v", jump.Duration(), jump.Value(0).Position)
	}
}

func TestZeroDurationIsTerminal(t *testing.T) {
	m := Linear(1, 2, 0).Value(0)
	if m.Position != 2 || m.Velocity != 0 {
		t.Errorf("Value = %+v, want {2 0}", m)
	}
}

func TestHoldIsConstant(t *testing.T) {
	tr := Hold(Vec2{X: 1, Y: 2}, time.Second)
	for _, e := range []time.Duration{0, 300 * time.Millisecond, time.Second} {
		m := tr.Value(e)
		if m.Position != (Vec2{X: 1, Y: 2}) || m.Velocity != (Vec2{}) {
			t.Errorf("Value(%v) = %+v", e, m)
		}
	}
}

func TestTweenMatchesEase(t *testing.T) {
	d := 400 * time.Millisecond
	tw := Tween(0, 1, d, ease.InOutQuad)
	ez := Ease(0, 1, d, ease.InOutQuad)
	for e := time.Duration(0); e <= d; e += 20 * time.Millisecond {
		a, b := tw.Value(e), ez.Value(e)
		if !approxEqual(a.Position, b.Position, 1e-5) {
			t.Errorf("at %v: tween %v, ease %v", e, a.Position, b.Position)
		}
		if !approxEqual(a.Velocity, b.Velocity, 1e-2) {
			t.Errorf("at %v: tween velocity %v, ease velocity %v", e, a.Velocity, b.Velocity)
		}
	}
}

func TestTweenIsPure(t *testing.T) {
	tr := Tween(0, 100, time.Second, ease.Linear)
	first := tr.Value(300 * time.Millisecond)
	tr.Value(900 * time.Millisecond)
	if again := tr.Value(300 * time.Millisecond); again != first {
		t.Errorf("Value changed between calls: %+v then %+v", first, again)
	}
}

// --- Vectors ---

func TestEaseVectorEndpoints(t *testing.T) {
	from := Color{R: 1, A: 1}
	to := Color{B: 1, A: 0.5}
	tr := EaseVector(from, to, 200*time.Millisecond, ease.InOutCubic)
	if got := tr.Value(0).Position; got != from {
		t.Errorf("start = %+v, want %+v", got, from)
	}
	if got := tr.Value(200 * time.Millisecond).Position; got != to {
		t.Errorf("end = %+v, want %+v", got, to)
	}
}

func TestLinearVectorMidpoint(t *testing.T) {
	tr := LinearVector(Vec2{}, Vec2{X: 10, Y: -20}, time.Second)
	m := tr.Value(500 * time.Millisecond)
	if m.Position != (Vec2{X: 5, Y: -10}) {
		t.Errorf("Position = %+v, want {5 -10}", m.Position)
	}
	if m.Velocity != (Vec2{X: 10, Y: -20}) {
		t.Errorf("Velocity = %+v, want {10 -20}", m.Velocity)
	}
}

func TestColorClampAndRGBA8(t *testing.T) {
	c := Color{R: 1.2, G: -0.1, B: 0.5, A: 1}
	r, g, b, a := c.RGBA8()
	if r != 255 || g != 0 || b != 128 || a != 255 {
		t.Errorf("RGBA8 = %d,%d,%d,%d; want 255,0,128,255", r, g, b, a)
	}
}
