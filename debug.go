package tempo

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugMode gates every diagnostic line tempo writes. Set it with
// SetDebugMode. It is package-wide because tasks and transitions have no
// owner to hang a flag on.
var debugMode bool

// debugOut is where diagnostics go. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug mode. When enabled, per-turn loop
// timing, strand yields, animator session transitions and rejected API
// misuse are logged to stderr.
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return debugMode
}

// turnStats holds per-turn timing and work counts for one Loop.Frame call.
// Only populated when debug mode is on.
type turnStats struct {
	ingressTime time.Duration
	timerTime   time.Duration
	frameTime   time.Duration
	ingress     int
	timersFired int
	callbacks   int
	pending     int
}

// debugLogTurn prints loop turn stats to stderr.
func debugLogTurn(turn uint64, stats turnStats) {
	if !debugMode {
		return
	}
	total := stats.ingressTime + stats.timerTime + stats.frameTime
	_, _ = fmt.Fprintf(debugOut,
		"[tempo] turn %d | ingress: %v | timers: %v | frame: %v | total: %v\n",
		turn, stats.ingressTime, stats.timerTime, stats.frameTime, total)
	_, _ = fmt.Fprintf(debugOut,
		"[tempo] posted: %d | timers fired: %d | frame callbacks: %d | pending: %d\n",
		stats.ingress, stats.timersFired, stats.callbacks, stats.pending)
}

// debugf prints a single diagnostic line when debug mode is on.
func debugf(format string, args ...any) {
	if !debugMode {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[tempo] "+format+"\n", args...)
}

// debugWarnf prints a warning line when debug mode is on.
func debugWarnf(format string, args ...any) {
	if !debugMode {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[tempo] warning: "+format+"\n", args...)
}
