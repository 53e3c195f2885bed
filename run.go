package scrollstage

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and page opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Pages is the scrollable page length in viewport heights. Zero uses
	// DefaultScrollPages. Ignored when the scene already has a tracker.
	Pages float64
	// Scrub eases reported scroll progress over this many seconds.
	Scrub float32
	// Resizable lets the user resize the window; the viewport follows.
	Resizable bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene until it closes. When the scene has
// no ScrollTracker one is created from cfg.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if scene.scroll == nil {
		scene.SetScrollTracker(NewScrollTracker(cfg.Pages))
	}
	if cfg.Scrub > 0 {
		scene.scroll.Scrub = cfg.Scrub
	}
	scene.SetShowFPS(cfg.ShowFPS)
	scene.SetViewport(float64(cfg.Width), float64(cfg.Height))

	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(&game{scene: scene})
}
