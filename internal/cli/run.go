package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/tempo"
)

func init() {
	runCmd.Flags().DurationVar(&runDuration, "duration", 0, "Length of each leg (overrides config)")
	runCmd.Flags().StringVar(&runEasing, "easing", "", "Easing curve name (overrides config)")
	runCmd.Flags().IntVar(&runSample, "sample", 4, "Print every Nth tick")
	runCmd.Flags().BoolVar(&runListEasings, "list-easings", false, "Print the known easing names and exit")
	rootCmd.AddCommand(runCmd)
}

var (
	runDuration    time.Duration
	runEasing      string
	runSample      int
	runListEasings bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Animate a value headlessly and print its trace",
	Long: `Animate "value" from the configured start to end and back along an easing
curve, with "linear" alongside for reference, and print the values as the
loop ticks in real time.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if runListEasings {
		for _, name := range tempo.EasingNames() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	ac := cfg.Animation
	if runDuration > 0 {
		ac.Duration = Duration{runDuration}
	}
	if runEasing != "" {
		ac.Easing = runEasing
	}
	fn, err := tempo.EasingByName(ac.Easing)
	if err != nil {
		return err
	}

	rt := cfg.newRuntime()
	a := startTrace(rt, ac, fn, out, runSample)
	a.AddListener(&tempo.ListenerFuncs[string, float64]{
		OnCompleted: func(*tempo.Animator[string, float64]) { rt.Shutdown() },
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rt.Loop.Run(ctx); err != nil {
		// Interrupted before the session ended.
		a.Cancel()
	}
	return nil
}

// startTrace schedules the trace animation on rt and returns its animator.
// Every sample-th tick is written to w, and the session outcome is written
// when it ends.
func startTrace(rt *tempo.Runtime, ac AnimationConfig, fn ease.TweenFunc, w io.Writer, sample int) *tempo.Animator[string, float64] {
	if sample < 1 {
		sample = 1
	}
	d, hold := ac.Duration.Duration, ac.Hold.Duration

	a := tempo.NewAnimator[string, float64](rt.Scheduler, rt.Frames, rt.Clock())
	a.Invoke("value", ac.From).
		Using(tempo.Ease(ac.From, ac.To, d, fn)).
		Then(tempo.Hold(ac.To, hold)).
		Then(tempo.Ease(ac.To, ac.From, d, fn))
	a.Invoke("linear", ac.From).
		Using(tempo.Linear(ac.From, ac.To, d)).
		Then(tempo.Hold(ac.To, hold)).
		Then(tempo.Linear(ac.To, ac.From, d))

	values := map[string]float64{"value": ac.From, "linear": ac.From}
	ticks := 0
	a.AddListener(&tempo.ListenerFuncs[string, float64]{
		OnChanged: func(_ *tempo.Animator[string, float64], changes map[string]tempo.Change[string, float64]) {
			for p, c := range changes {
				values[p] = c.New
			}
			ticks++
			if ticks%sample == 0 {
				fmt.Fprintf(w, "%8s  %-14s %8.4f  linear %8.4f\n",
					rt.Scheduler.Now().Round(time.Millisecond), ac.Easing, values["value"], values["linear"])
			}
		},
		OnCompleted: func(a *tempo.Animator[string, float64]) {
			fmt.Fprintf(w, "completed %s: %s %.4f, linear %.4f\n", a.ID(), ac.Easing, values["value"], values["linear"])
		},
		OnCancelled: func(a *tempo.Animator[string, float64]) {
			fmt.Fprintf(w, "cancelled %s\n", a.ID())
		},
	})
	a.Start()
	return a
}
