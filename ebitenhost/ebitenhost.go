// Package ebitenhost drives a tempo Loop from [Ebitengine]. The game's
// Update runs one loop turn per tick, so timers, frame callbacks and
// animators advance in lockstep with the display.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/tempo"
)

// RunConfig holds window and overlay options for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
}

// Game adapts a Loop to ebiten.Game.
type Game struct {
	loop *tempo.Loop
	draw func(screen *ebiten.Image)
	cfg  RunConfig

	// FPS overlay, refreshed every ~0.5 seconds.
	overlay     *ebiten.Image
	overlayText string
	sinceFPS    float64

	// OnUpdate, when set, runs after the loop turn on every tick. Returning
	// an error stops the game.
	OnUpdate func() error
}

// NewGame creates a game that pumps loop and renders with draw. draw may be
// nil for an empty screen.
func NewGame(loop *tempo.Loop, draw func(screen *ebiten.Image), cfg RunConfig) *Game {
	return &Game{loop: loop, draw: draw, cfg: cfg}
}

// Loop returns the loop the game pumps.
func (g *Game) Loop() *tempo.Loop {
	return g.loop
}

// Update implements ebiten.Game. It returns ebiten.Termination once the loop
// has been shut down.
func (g *Game) Update() error {
	g.loop.Frame()
	if g.loop.IsShutdown() {
		return ebiten.Termination
	}
	if g.cfg.ShowFPS {
		g.sinceFPS += 1.0 / float64(ebiten.TPS())
		if g.sinceFPS >= 0.5 || g.overlayText == "" {
			g.sinceFPS = 0
			g.overlayText = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		}
	}
	if g.OnUpdate != nil {
		return g.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.draw != nil {
		g.draw(screen)
	}
	if g.cfg.ShowFPS && g.overlayText != "" {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		if g.overlay == nil {
			g.overlay = ebiten.NewImage(100, 32)
		}
		g.overlay.Clear()
		g.overlay.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(g.overlay, g.overlayText)
		screen.DrawImage(g.overlay, nil)
	}
}

// Layout implements ebiten.Game. A zero configured size follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width <= 0 || g.cfg.Height <= 0 {
		return outsideWidth, outsideHeight
	}
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and blocks until it is closed or the loop shuts down.
func Run(loop *tempo.Loop, draw func(screen *ebiten.Image), cfg RunConfig) error {
	return RunGame(NewGame(loop, draw, cfg))
}

// RunGame opens a window for an already configured game.
func RunGame(g *Game) error {
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	}
	return ebiten.RunGame(g)
}
