package scrollstage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// DefaultScrollPages is the page length in viewport heights.
	DefaultScrollPages = 3.0
	// DefaultWheelStep is the pixel distance scrolled per wheel notch.
	DefaultWheelStep = 100.0
)

// ScrollTracker models a scrollable page taller than the viewport and turns
// its offset into a progress value in [0, 1]. With Scrub > 0 the reported
// progress eases toward the offset's progress instead of jumping.
type ScrollTracker struct {
	// Pages is the page length in viewport heights. Values <= 1 leave no
	// scrollable range and pin progress to 0.
	Pages float64
	// WheelStep is the pixel distance of one wheel notch or arrow key tick.
	WheelStep float64
	// Scrub is the catch-up duration in seconds. Zero reports the target
	// progress immediately.
	Scrub float32

	viewportH float64
	offset    float64
	progress  float64
	target    float64
	scrub     *gween.Tween

	// input returns the scroll delta in pixels for this tick. Positive
	// scrolls down the page.
	input func(t *ScrollTracker) float64
}

// NewScrollTracker creates a tracker for a page pages viewport heights long.
// Wheel and keyboard input are read from ebiten each Update.
func NewScrollTracker(pages float64) *ScrollTracker {
	if pages <= 0 {
		pages = DefaultScrollPages
	}
	return &ScrollTracker{
		Pages:     pages,
		WheelStep: DefaultWheelStep,
		input:     ebitenScrollInput,
	}
}

// SetInput replaces the per-tick scroll delta reader. Nil disables live
// input; ScrollBy and SetProgress still apply.
func (t *ScrollTracker) SetInput(fn func(t *ScrollTracker) float64) {
	t.input = fn
}

// Resize sets the viewport height and keeps the current progress.
func (t *ScrollTracker) Resize(viewportH float64) {
	if viewportH <= 0 || viewportH == t.viewportH {
		return
	}
	t.viewportH = viewportH
	t.offset = t.target * t.scrollRange()
}

// ViewportHeight returns the height last passed to Resize.
func (t *ScrollTracker) ViewportHeight() float64 {
	return t.viewportH
}

func (t *ScrollTracker) scrollRange() float64 {
	r := (t.Pages - 1) * t.viewportH
	if r < 0 {
		return 0
	}
	return r
}

// Offset returns the scroll position in pixels from the top of the page.
func (t *ScrollTracker) Offset() float64 {
	return t.offset
}

// ScrollBy moves the page by delta pixels, clamped to the scrollable range.
func (t *ScrollTracker) ScrollBy(delta float64) {
	if !isFinite(delta) {
		return
	}
	t.ScrollTo(t.offset + delta)
}

// ScrollTo jumps the page to offset pixels, clamped to the scrollable range.
func (t *ScrollTracker) ScrollTo(offset float64) {
	r := t.scrollRange()
	if r == 0 {
		t.offset = 0
		t.setTarget(0)
		return
	}
	t.offset = min(max(offset, 0), r)
	t.setTarget(t.offset / r)
}

// SetProgress moves the page to the offset for progress p.
func (t *ScrollTracker) SetProgress(p float64) {
	if !isFinite(p) {
		return
	}
	p = clamp01(p)
	t.offset = p * t.scrollRange()
	t.setTarget(p)
}

func (t *ScrollTracker) setTarget(p float64) {
	if p == t.target && t.scrub == nil {
		t.progress = p
		return
	}
	t.target = p
	if t.Scrub <= 0 {
		t.progress = p
		t.scrub = nil
		return
	}
	t.scrub = gween.New(float32(t.progress), float32(p), t.Scrub, ease.OutQuad)
}

// Target returns the progress the page offset corresponds to.
func (t *ScrollTracker) Target() float64 {
	return t.target
}

// Progress returns the reported progress in [0, 1].
func (t *ScrollTracker) Progress() float64 {
	return t.progress
}

// Update reads live input and advances the scrub by dt seconds.
func (t *ScrollTracker) Update(dt float32) {
	if t.input != nil {
		if d := t.input(t); d != 0 {
			t.ScrollBy(d)
		}
	}
	if t.scrub == nil {
		return
	}
	v, done := t.scrub.Update(dt)
	t.progress = clamp01(float64(v))
	if done {
		t.progress = t.target
		t.scrub = nil
	}
}

// ebitenScrollInput maps wheel, arrow, page, home, and end keys to a pixel
// delta.
func ebitenScrollInput(t *ScrollTracker) float64 {
	_, wy := ebiten.Wheel()
	d := -wy * t.WheelStep
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d += t.WheelStep / 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d -= t.WheelStep / 4
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d += t.viewportH
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		d -= t.viewportH
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		d -= t.offset
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		d += t.scrollRange() - t.offset
	}
	return d
}
