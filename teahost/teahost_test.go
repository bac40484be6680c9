package teahost

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/tempo"
)

func newLoop() (*tempo.Loop, *tempo.ManualClock) {
	clock := tempo.NewManualClock(time.Date(2024, 3, 29, 12, 0, 0, 0, time.UTC))
	return tempo.NewLoop(tempo.WithClock(clock)), clock
}

func TestFrameMsgPumpsLoop(t *testing.T) {
	loop, _ := newLoop()
	ran := 0
	loop.RequestFrame(func(time.Time) { ran++ })

	m := New(loop, func(int) string { return "" })
	next, cmd := m.Update(FrameMsg(time.Now()))
	if ran != 1 {
		t.Fatalf("frame callbacks ran %d times, want 1", ran)
	}
	if cmd == nil {
		t.Fatal("expected a follow-up tick command")
	}
	if got := next.(Model).Frames(); got != 1 {
		t.Errorf("Frames = %d, want 1", got)
	}
}

func TestQuitOnLoopShutdown(t *testing.T) {
	loop, _ := newLoop()
	loop.Post(loop.Shutdown)

	m := New(loop, nil)
	next, cmd := m.Update(FrameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd produced %T, want tea.QuitMsg", cmd())
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestQuitKeysShutDownLoop(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	}
	for _, key := range keys {
		loop, _ := newLoop()
		m := New(loop, nil)
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Errorf("%v: expected quit command", key)
			continue
		}
		if !loop.IsShutdown() {
			t.Errorf("%v: loop not shut down", key)
		}
	}
}

func TestViewReceivesWidth(t *testing.T) {
	loop, _ := newLoop()
	var got int
	m := New(loop, func(w int) string {
		got = w
		return "ok"
	}, WithInterval(time.Millisecond))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if v := next.View(); v != "ok" {
		t.Errorf("View = %q, want ok", v)
	}
	if got != 80 {
		t.Errorf("width = %d, want 80", got)
	}
}

func TestWithInterval(t *testing.T) {
	loop, _ := newLoop()
	if m := New(loop, nil, WithInterval(0)); m.interval != DefaultInterval {
		t.Errorf("interval = %v, want default", m.interval)
	}
	if m := New(loop, nil, WithInterval(5*time.Millisecond)); m.interval != 5*time.Millisecond {
		t.Errorf("interval = %v, want 5ms", m.interval)
	}
}
