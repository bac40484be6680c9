package tempo

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// captureDebug enables debug mode with output going to a buffer for the
// duration of the test.
func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevMode := debugOut, debugMode
	debugOut = &buf
	SetDebugMode(true)
	t.Cleanup(func() {
		debugOut = prevOut
		SetDebugMode(prevMode)
	})
	return &buf
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugModeToggle(t *testing.T) {
	prev := DebugMode()
	defer SetDebugMode(prev)

	SetDebugMode(true)
	if !DebugMode() {
		t.Error("DebugMode = false after SetDebugMode(true)")
	}
	SetDebugMode(false)
	if DebugMode() {
		t.Error("DebugMode = true after SetDebugMode(false)")
	}
}

func TestDebugOffWritesNothing(t *testing.T) {
	buf := captureDebug(t)
	SetDebugMode(false)

	h := newHarness(t)
	h.Scheduler.After(0, func(time.Duration) {})
	h.step(time.Millisecond)
	if buf.Len() != 0 {
		t.Errorf("wrote %q with debug mode off", buf.String())
	}
}

func TestDebugLogsTurnStats(t *testing.T) {
	buf := captureDebug(t)

	h := newHarness(t)
	h.Scheduler.After(0, func(time.Duration) {})
	h.step(time.Millisecond)

	out := buf.String()
	for _, want := range []string{"[tempo] turn 1", "frame callbacks: 1", "pending: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugLogsStrandYield(t *testing.T) {
	buf := captureDebug(t)

	h := newHarness(t, WithFrameBudget(2*time.Millisecond))
	var ran []int
	h.Strand.RunSlice(tickingJobs(h, 5, &ran))
	if !strings.Contains(buf.String(), "strand yielded after 2 jobs") {
		t.Errorf("missing yield line:\n%s", buf.String())
	}
}

func TestDebugWarnsOnSealedChain(t *testing.T) {
	buf := captureDebug(t)

	h := newHarness(t)
	a := newFloatAnimator(h)
	b := a.Invoke("x", 0).Using(Linear(0, 1, time.Millisecond))
	a.Start()
	b.Then(Linear(1, 2, time.Millisecond))

	if !strings.Contains(buf.String(), "[tempo] warning: transition added to a chain already consumed") {
		t.Errorf("missing warning:\n%s", buf.String())
	}
}

func TestDebugWarnsOnReentrantFrame(t *testing.T) {
	buf := captureDebug(t)

	h := newHarness(t)
	h.Frames.OnNextFrame(func(time.Duration) { h.Loop.Frame() })
	h.step(time.Millisecond)

	if !strings.Contains(buf.String(), "[tempo] warning: Frame called re-entrantly") {
		t.Errorf("missing warning:\n%s", buf.String())
	}
}
