package tempo

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/phanxgames/tempo/metrics"
)

// Host is the event-loop primitive that runs a callback once after a delay.
// fn must be invoked on the loop goroutine. stop prevents a pending call and
// reports whether it did so.
type Host interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// FrameSource is the host's native per-frame signal. fn runs once, before
// the next repaint, with the frame's timestamp. cancel drops the request if
// the frame has not fired yet.
type FrameSource interface {
	RequestFrame(fn func(frameTime time.Time)) (cancel func())
}

const (
	// DefaultFrameRate is the rate Run pumps frames at when no native frame
	// signal drives the loop.
	DefaultFrameRate = 60

	// DefaultIngressBudget caps how long one turn spends on callbacks posted
	// from other goroutines before moving on to timers and frames.
	DefaultIngressBudget = 4 * time.Millisecond
)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock sets the loop's clock. Defaults to SystemClock.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithFrameRate sets the frame rate used by Run. Non-positive values keep
// the default.
func WithFrameRate(fps int) LoopOption {
	return func(l *Loop) {
		if fps > 0 {
			l.frameRate = fps
		}
	}
}

// WithIngressBudget sets the per-turn time cap for draining posted
// callbacks. Non-positive values keep the default.
func WithIngressBudget(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.ingressBudget = d
		}
	}
}

// loopTimer is one pending AfterFunc.
type loopTimer struct {
	when  time.Time
	seq   uint64
	fn    func()
	index int // heap index, -1 once popped or removed
}

// timerHeap orders timers by deadline, then by insertion.
type timerHeap []*loopTimer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*loopTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

type frameRequest struct {
	fn        func(time.Time)
	cancelled bool
}

// Loop is a single-goroutine event loop implementing Host and FrameSource.
// One call to Frame is one turn: posted callbacks, then due timers, then the
// frame callbacks requested before the turn began. Everything except Post
// must be called from the goroutine that calls Frame.
//
// Hosts with a display signal (Ebitengine's Update, a bubbletea tick) call
// Frame from it. Run pumps Frame from a ticker when no such signal exists.
type Loop struct {
	clock         Clock
	frameRate     int
	ingressBudget time.Duration

	timers timerHeap
	seq    uint64
	frames *queue.Queue // *frameRequest

	mu      sync.Mutex
	ingress *queue.Queue // func(), guarded by mu

	turn     uint64
	inFrame  bool
	shutdown bool
}

// NewLoop creates an idle loop.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		clock:         SystemClock(),
		frameRate:     DefaultFrameRate,
		ingressBudget: DefaultIngressBudget,
		frames:        queue.New(),
		ingress:       queue.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Clock returns the loop's clock.
func (l *Loop) Clock() Clock {
	return l.clock
}

// AfterFunc implements Host. The callback fires during the first turn that
// observes the deadline as reached.
func (l *Loop) AfterFunc(d time.Duration, fn func()) (stop func() bool) {
	if d < 0 {
		d = 0
	}
	l.seq++
	t := &loopTimer{when: l.clock.Now().Add(d), seq: l.seq, fn: fn}
	heap.Push(&l.timers, t)
	return func() bool {
		if t.index < 0 {
			return false
		}
		heap.Remove(&l.timers, t.index)
		metrics.TasksCancelled.Inc()
		return true
	}
}

// RequestFrame implements FrameSource. Requests made while a frame is
// running are served by the next frame. After Shutdown requests are dropped.
func (l *Loop) RequestFrame(fn func(frameTime time.Time)) (cancel func()) {
	req := &frameRequest{fn: fn}
	if l.shutdown {
		req.cancelled = true
	} else {
		l.frames.Add(req)
	}
	return func() {
		if !req.cancelled {
			req.cancelled = true
			metrics.TasksCancelled.Inc()
		}
	}
}

// Post queues fn to run at the start of the next turn. Safe to call from any
// goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.ingress.Add(fn)
	l.mu.Unlock()
}

// Pending reports how many timers and frame requests are queued. Cancelled
// frame requests are counted until the frame that would have run them.
func (l *Loop) Pending() int {
	return len(l.timers) + l.frames.Length()
}

// Idle reports whether nothing is queued.
func (l *Loop) Idle() bool {
	l.mu.Lock()
	posted := l.ingress.Length()
	l.mu.Unlock()
	return posted == 0 && l.Pending() == 0
}

// Shutdown stops the loop. Pending timers and frame requests are dropped and
// later requests are ignored. Run returns after the current turn.
func (l *Loop) Shutdown() {
	l.shutdown = true
	for _, t := range l.timers {
		t.index = -1
	}
	l.timers = l.timers[:0]
	for l.frames.Length() > 0 {
		l.frames.Remove()
	}
}

// IsShutdown reports whether Shutdown has been called.
func (l *Loop) IsShutdown() bool {
	return l.shutdown
}

// Frame runs one loop turn.
func (l *Loop) Frame() {
	if l.shutdown {
		return
	}
	if l.inFrame {
		debugWarnf("Frame called re-entrantly from a loop callback; ignored")
		return
	}
	l.inFrame = true
	defer func() { l.inFrame = false }()

	l.turn++
	var stats turnStats
	wall := time.Now()

	stats.ingress = l.drainIngress()
	t0 := time.Now()
	stats.ingressTime = t0.Sub(wall)

	stats.timersFired = l.runTimers()
	t1 := time.Now()
	stats.timerTime = t1.Sub(t0)

	stats.callbacks = l.runFrameCallbacks()
	stats.frameTime = time.Since(t1)

	metrics.Frames.Inc()
	metrics.FrameSeconds.Observe(time.Since(wall).Seconds())

	if debugMode {
		stats.pending = l.Pending()
		debugLogTurn(l.turn, stats)
	}
}

// Run pumps Frame at the configured frame rate until ctx is done or the
// loop is shut down.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.frameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Frame()
			if l.shutdown {
				return nil
			}
		}
	}
}

func (l *Loop) drainIngress() int {
	start := time.Now()
	n := 0
	for {
		l.mu.Lock()
		if l.ingress.Length() == 0 {
			l.mu.Unlock()
			return n
		}
		fn := l.ingress.Remove().(func())
		l.mu.Unlock()

		fn()
		n++
		if time.Since(start) >= l.ingressBudget {
			return n
		}
	}
}

// runTimers fires every timer due at the start of the turn. Timers armed by
// those callbacks wait for a later turn even if already due.
func (l *Loop) runTimers() int {
	now := l.clock.Now()
	limit := l.seq
	fired := 0
	for len(l.timers) > 0 && !l.shutdown {
		t := l.timers[0]
		if t.when.After(now) || t.seq > limit {
			break
		}
		heap.Pop(&l.timers)
		t.fn()
		fired++
	}
	metrics.TimersFired.Add(float64(fired))
	return fired
}

func (l *Loop) runFrameCallbacks() int {
	n := l.frames.Length()
	if n == 0 {
		return 0
	}
	frameTime := l.clock.Now()
	ran := 0
	for i := 0; i < n && !l.shutdown; i++ {
		req := l.frames.Remove().(*frameRequest)
		if req.cancelled {
			continue
		}
		req.cancelled = true
		req.fn(frameTime)
		ran++
	}
	return ran
}
