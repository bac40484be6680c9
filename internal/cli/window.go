package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/tempo"
	"github.com/phanxgames/tempo/ebitenhost"
)

func init() {
	windowCmd.Flags().BoolVar(&windowFPS, "fps", true, "Show the FPS/TPS overlay")
	rootCmd.AddCommand(windowCmd)
}

var windowFPS bool

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Compare easing curves as moving squares in a window",
	RunE:  runWindow,
}

const (
	windowW = 800
	windowH = 480
)

func runWindow(cmd *cobra.Command, args []string) error {
	// Ebitengine ticks Update at its own TPS, so the loop needs no ticker.
	rt := cfg.newRuntime()
	board, err := newEasingBoard(rt, cfg.Animation)
	if err != nil {
		return err
	}

	rows := len(board.names)
	rowH := float64(windowH) / float64(max(rows, 1))
	left, right := 60.0, float64(windowW)-60
	draw := func(screen *ebiten.Image) {
		screen.Fill(tempoBackground)
		for i, name := range board.names {
			v := board.values[name]
			y := rowH * (float64(i) + 0.5)
			ebitenhost.FillRect(screen, (left+right)/2, y, right-left, 2, 0, trackColor)
			ebitenhost.FillRect(screen, left+(right-left)*v, y, 24, 24, 0, squareColor(i, rows))
		}
	}

	return ebitenhost.Run(rt.Loop, draw, ebitenhost.RunConfig{
		Title:   "tempo easings",
		Width:   windowW,
		Height:  windowH,
		ShowFPS: windowFPS,
	})
}

var (
	tempoBackground = ebitenhost.RGBA(tempo.Color{R: 0.1, G: 0.1, B: 0.15, A: 1})
	trackColor      = tempo.Color{R: 1, G: 1, B: 1, A: 0.15}
)

// squareColor spreads rows across a cyan to pink gradient.
func squareColor(i, n int) tempo.Color {
	from := tempo.Color{R: 0.4, G: 0.8, B: 1, A: 1}
	to := tempo.Color{R: 1, G: 0.4, B: 0.7, A: 1}
	if n <= 1 {
		return from
	}
	return from.Add(to.Sub(from).Mul(float64(i) / float64(n-1)))
}
