// Package metrics exposes Prometheus collectors for the tempo frame loop,
// strands and animators. Collectors register with the default registry on
// import; serve them with promhttp.Handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Loop ───────────────────────────────────────────────────────────────────

// Frames counts loop turns that ran frame callbacks.
var Frames = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "frames_total",
	Help:      "Total frame turns processed by the loop.",
})

// FrameSeconds tracks how long each loop turn took.
var FrameSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "tempo",
	Name:      "frame_seconds",
	Help:      "Wall time spent inside one loop turn.",
	Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.0167, 0.033, 0.066, 0.1},
})

// TimersFired counts one-shot host timers that reached their deadline.
var TimersFired = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "timers_fired_total",
	Help:      "Total host timers fired.",
})

// TasksCancelled counts host timers and frame requests released before
// they fired.
var TasksCancelled = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "tasks_cancelled_total",
	Help:      "Total tasks cancelled before completion.",
})

// ─── Strand ─────────────────────────────────────────────────────────────────

// StrandJobs counts jobs executed by strands.
var StrandJobs = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "strand_jobs_total",
	Help:      "Total strand jobs executed.",
})

// StrandYields counts the times a strand ran out of frame budget and
// resumed on the next frame.
var StrandYields = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "strand_yields_total",
	Help:      "Total strand yields to the next frame.",
})

// ─── Animation ──────────────────────────────────────────────────────────────

// Animations counts finished animator sessions by outcome
// ("completed" or "cancelled").
var Animations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "animations_total",
	Help:      "Total animator sessions finished, by outcome.",
}, []string{"outcome"})

// AnimationTicks counts animator ticks across all sessions.
var AnimationTicks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "animation_ticks_total",
	Help:      "Total animator ticks evaluated.",
})
