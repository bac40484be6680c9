package cli

import (
	"context"
	"fmt"
	"io"
	"iter"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/tempo"
)

func init() {
	strandCmd.Flags().IntVar(&strandJobs, "jobs", 0, "Number of jobs (overrides config)")
	strandCmd.Flags().DurationVar(&strandBudget, "budget", 0, "Per-frame budget (overrides config)")
	strandCmd.Flags().DurationVar(&strandJobCost, "job-cost", 0, "Busy time per job (overrides config)")
	rootCmd.AddCommand(strandCmd)
}

var (
	strandJobs    int
	strandBudget  time.Duration
	strandJobCost time.Duration
)

var strandCmd = &cobra.Command{
	Use:   "strand",
	Short: "Run a budgeted batch of busy jobs and report how it was sliced",
	RunE:  runStrand,
}

// strandReport summarises one benchmark run.
type strandReport struct {
	Jobs     int
	Frames   int
	Budget   time.Duration
	Wall     time.Duration
	MaxBurst int // most jobs run in a single frame
}

func runStrand(cmd *cobra.Command, args []string) error {
	sc := cfg.Strand
	if strandJobs > 0 {
		sc.Jobs = strandJobs
	}
	if strandBudget > 0 {
		sc.Budget = Duration{strandBudget}
	}
	if strandJobCost > 0 {
		sc.JobCost = Duration{strandJobCost}
	}

	c := cfg
	c.Strand = sc
	rt := c.newRuntime()

	report, err := benchmarkStrand(cmd.Context(), rt, sc.Jobs, busyJob(sc.JobCost.Duration))
	if err != nil {
		return err
	}
	return writeStrandReport(cmd.OutOrStdout(), report)
}

// busyJob returns a job that spins for cost of wall time.
func busyJob(cost time.Duration) func() {
	return func() {
		for start := time.Now(); time.Since(start) < cost; {
		}
	}
}

// benchmarkStrand runs n copies of job on rt's strand, pumping rt's loop
// until the strand completes, and reports how the work was sliced.
func benchmarkStrand(ctx context.Context, rt *tempo.Runtime, n int, job func()) (strandReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	report := strandReport{Jobs: n, Budget: rt.Strand.Budget()}

	frame, burst := 0, 0
	jobs := iter.Seq[func()](func(yield func(func()) bool) {
		for range n {
			if !yield(func() { job(); burst++ }) {
				return
			}
		}
	})

	counter := rt.Scheduler.Every(0, func(time.Duration) {
		report.MaxBurst = max(report.MaxBurst, burst)
		burst = 0
		frame++
	})

	var result error
	begin := time.Now()
	task := rt.Strand.Run(jobs)
	rt.Scheduler.DelayUntil(ctx, func(time.Duration) bool { return task.Completed() }, func(err error) {
		result = err
		counter.Cancel()
		rt.Shutdown()
	})

	if err := rt.Loop.Run(ctx); err != nil {
		task.Cancel()
		return report, err
	}
	report.MaxBurst = max(report.MaxBurst, burst)
	report.Frames = frame
	report.Wall = time.Since(begin)
	return report, result
}

func writeStrandReport(out io.Writer, r strandReport) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "JOBS\tFRAMES\tBUDGET\tMAX/FRAME\tWALL")
	fmt.Fprintf(w, "%d\t%d\t%v\t%d\t%v\n", r.Jobs, r.Frames, r.Budget, r.MaxBurst, r.Wall.Round(time.Millisecond))
	return w.Flush()
}
