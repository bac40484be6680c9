package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/tempo"
	"github.com/phanxgames/tempo/teahost"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Compare easing curves as animated bars in the terminal",
	Long:  `Animate one bar per configured easing, looping until q, esc or ctrl+c.`,
	RunE:  runTUI,
}

// barStyles holds the lipgloss styles for the bar view.
type barStyles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Fill  lipgloss.Style
	Track lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
}

func defaultBarStyles() barStyles {
	return barStyles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).MarginBottom(1),
		Label: lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("250")),
		Fill:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Track: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Value: lipgloss.NewStyle().Width(8).Align(lipgloss.Right).Foreground(lipgloss.Color("71")),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}

// easingBoard loops one animator over a set of easing curves and renders
// the current values as bars.
type easingBoard struct {
	rt      *tempo.Runtime
	anim    *tempo.Animator[string, float64]
	names   []string
	values  map[string]float64
	styles  barStyles
	session int
}

// newEasingBoard builds the animator for ac.Easings and starts the first
// session. Each completed session restarts after ac.Hold.
func newEasingBoard(rt *tempo.Runtime, ac AnimationConfig) (*easingBoard, error) {
	b := &easingBoard{
		rt:     rt,
		anim:   tempo.NewAnimator[string, float64](rt.Scheduler, rt.Frames, rt.Clock()),
		names:  ac.Easings,
		values: make(map[string]float64, len(ac.Easings)),
		styles: defaultBarStyles(),
	}
	d, hold := ac.Duration.Duration, ac.Hold.Duration
	for _, name := range b.names {
		fn, err := tempo.EasingByName(name)
		if err != nil {
			return nil, err
		}
		b.values[name] = 0
		b.anim.Invoke(name, 0).
			Using(tempo.Ease(0, 1, d, fn)).
			Then(tempo.Hold(1.0, hold)).
			Then(tempo.Ease(1, 0, d, fn))
	}

	b.anim.AddListener(&tempo.ListenerFuncs[string, float64]{
		OnChanged: func(_ *tempo.Animator[string, float64], changes map[string]tempo.Change[string, float64]) {
			for name, c := range changes {
				b.values[name] = c.New
			}
		},
		OnCompleted: func(a *tempo.Animator[string, float64]) {
			a.Schedule(hold)
			b.session++
		},
	})
	b.anim.Start()
	b.session = 1
	return b, nil
}

// view renders one row per easing, fitting the bars to width.
func (b *easingBoard) view(width int) string {
	barWidth := 40
	if width > 0 {
		barWidth = max(10, width-28)
	}

	var sb strings.Builder
	sb.WriteString(b.styles.Title.Render(fmt.Sprintf("tempo easings, session %d", b.session)))
	sb.WriteByte('\n')
	for _, name := range b.names {
		v := b.values[name]
		sb.WriteString(b.styles.Label.Render(name))
		sb.WriteString(renderBar(b.styles, v, barWidth))
		sb.WriteString(b.styles.Value.Render(fmt.Sprintf("%.3f", v)))
		sb.WriteByte('\n')
	}
	sb.WriteString(b.styles.Muted.Render(fmt.Sprintf("%s elapsed, q to quit", b.rt.Scheduler.Now().Round(100*time.Millisecond))))
	return sb.String()
}

// renderBar draws v in [0, 1] as a bar of the given width. Overshooting
// easings are clamped to the track.
func renderBar(s barStyles, v float64, width int) string {
	filled := int(math.Round(v * float64(width)))
	filled = min(max(filled, 0), width)
	return s.Fill.Render(strings.Repeat("█", filled)) + s.Track.Render(strings.Repeat("░", width-filled))
}

func runTUI(cmd *cobra.Command, args []string) error {
	rt := cfg.newRuntime()
	board, err := newEasingBoard(rt, cfg.Animation)
	if err != nil {
		return err
	}
	interval := time.Second / time.Duration(cfg.Loop.FrameRate)
	return teahost.Run(rt.Loop, board.view, teahost.WithInterval(interval))
}
