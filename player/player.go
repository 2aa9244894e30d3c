// Package player runs a frameshow scene in an ebiten window: it drives the
// logical tick at the scene's tick rate, draws through a vector surface and
// turns keyboard and mouse input into scene operations.
package player

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/phanxgames/frameshow"
)

// Config holds window and session settings for Run.
type Config struct {
	// Title is the window title.
	Title string
	// Width and Height set the window and logical screen size. When zero
	// the scene viewport size is used.
	Width, Height int
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// History receives a snapshot at every settle point. When nil an
	// unbounded history is created.
	History *frameshow.History
	// OnSettle is called with the new history top whenever a settle point
	// changed the scene, for example to autosave it.
	OnSettle func(data []byte)
	// ScreenshotDir is where F12 writes PNG captures. Empty disables them.
	ScreenshotDir string
	// Logger receives input and history errors. Nil discards them.
	Logger *zerolog.Logger
}

// background is the canvas color.
var background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Game implements ebiten.Game for a scene.
type Game struct {
	scene   *frameshow.Scene
	history *frameshow.History
	cfg     Config
	log     zerolog.Logger

	in   frameInput
	surf surface

	tool      tool
	dragging  bool
	dragStart frameshow.Vec2
	dragEnd   frameshow.Vec2

	lastCursor frameshow.Vec2
	panning    bool

	screenshotFrames []int
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wraps scene and records its initial state in the history.
func NewGame(scene *frameshow.Scene, cfg Config) *Game {
	vp := scene.Config().Viewport
	if cfg.Width <= 0 {
		cfg.Width = int(vp.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(vp.Height)
	}
	if cfg.History == nil {
		cfg.History = frameshow.NewHistory(0)
	}
	g := &Game{
		scene:   scene,
		history: cfg.History,
		cfg:     cfg,
		log:     zerolog.Nop(),
	}
	if cfg.Logger != nil {
		g.log = *cfg.Logger
	}
	if font, err := loadFont(); err != nil {
		g.log.Error().Err(err).Msg("text objects fall back to the debug font")
	} else {
		g.surf.font = font
	}
	if cfg.History.Len() == 0 {
		if _, err := cfg.History.Save(scene); err != nil {
			g.log.Error().Err(err).Msg("save initial history")
		}
	}
	return g
}

// Update polls input, applies it and runs one scene tick.
func (g *Game) Update() error {
	pollInput(&g.in)
	if err := g.apply(&g.in); err != nil {
		return err
	}
	if tps := g.scene.TickRate(); ebiten.TPS() != tps {
		ebiten.SetTPS(tps)
	}
	g.scene.Update()
	g.settlePan()
	return nil
}

// settlePan records a history entry when a recenter animation finishes.
func (g *Game) settlePan() {
	panning := g.scene.Camera().Panning()
	if g.panning && !panning {
		g.settle()
	}
	g.panning = panning
}

// Draw renders the scene and the selection rectangle.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.surf.dst = screen
	g.scene.Draw(&g.surf)
	if g.dragging && g.tool == toolSelect && !g.scene.Presenting() {
		g.surf.strokeRect(g.selectionRect())
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f  frame %d/%d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.scene.Frame(), g.scene.NumFrames()), 4, 4)
	}
	g.flushScreenshots(screen)
	g.surf.dst = nil
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and blocks until it is closed or ctrl+Q is pressed.
func Run(scene *frameshow.Scene, cfg Config) error {
	g := NewGame(scene, cfg)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(scene.TickRate())
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
