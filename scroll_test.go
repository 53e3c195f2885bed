package scrollstage

import (
	"math"
	"testing"
)

func newTestTracker(pages, viewportH float64) *ScrollTracker {
	tr := NewScrollTracker(pages)
	tr.SetInput(nil)
	tr.Resize(viewportH)
	return tr
}

func TestScrollTrackerProgress(t *testing.T) {
	tr := newTestTracker(3, 600)
	tests := []struct {
		name   string
		delta  float64
		offset float64
		want   float64
	}{
		{"half", 600, 600, 0.5},
		{"past end", 10000, 1200, 1},
		{"past start", -99999, 0, 0},
		{"quarter", 300, 300, 0.25},
	}
	for _, tt := range tests {
		tr.ScrollBy(tt.delta)
		assertNear(t, tt.name+" offset", tr.Offset(), tt.offset)
		assertNear(t, tt.name+" progress", tr.Progress(), tt.want)
	}
}

func TestScrollTrackerSetProgress(t *testing.T) {
	tr := newTestTracker(3, 600)
	tr.SetProgress(0.75)
	assertNear(t, "offset", tr.Offset(), 900)
	assertNear(t, "progress", tr.Progress(), 0.75)
	tr.SetProgress(2)
	assertNear(t, "clamped", tr.Progress(), 1)
	tr.SetProgress(math.NaN())
	assertNear(t, "NaN ignored", tr.Progress(), 1)
}

func TestScrollTrackerIgnoresNonFiniteDelta(t *testing.T) {
	tr := newTestTracker(3, 600)
	tr.ScrollBy(300)
	tr.ScrollBy(math.Inf(1))
	tr.ScrollBy(math.NaN())
	assertNear(t, "offset", tr.Offset(), 300)
}

func TestScrollTrackerResizeKeepsProgress(t *testing.T) {
	tr := newTestTracker(3, 600)
	tr.SetProgress(0.5)
	tr.Resize(300)
	assertNear(t, "offset", tr.Offset(), 300)
	assertNear(t, "progress", tr.Progress(), 0.5)
	if tr.ViewportHeight() != 300 {
		t.Errorf("ViewportHeight = %v", tr.ViewportHeight())
	}
}

func TestScrollTrackerSinglePage(t *testing.T) {
	tr := newTestTracker(1, 600)
	tr.ScrollBy(500)
	assertNear(t, "offset", tr.Offset(), 0)
	assertNear(t, "progress", tr.Progress(), 0)
}

func TestScrollTrackerDefaultPages(t *testing.T) {
	if tr := NewScrollTracker(0); tr.Pages != DefaultScrollPages {
		t.Errorf("Pages = %v", tr.Pages)
	}
}

func TestScrollTrackerScrub(t *testing.T) {
	tr := newTestTracker(3, 600)
	tr.Scrub = 0.5
	tr.ScrollTo(1200)
	assertNear(t, "target", tr.Target(), 1)
	assertNear(t, "not yet", tr.Progress(), 0)

	tr.Update(0.25)
	if p := tr.Progress(); p <= 0 || p >= 1 {
		t.Errorf("mid scrub progress = %v", p)
	}
	tr.Update(0.5)
	assertNear(t, "settled", tr.Progress(), 1)
}

func TestScrollTrackerScrubRetarget(t *testing.T) {
	tr := newTestTracker(3, 600)
	tr.Scrub = 1
	tr.ScrollTo(1200)
	tr.Update(0.5)
	mid := tr.Progress()
	tr.ScrollTo(0)
	tr.Update(0.01)
	if tr.Progress() > mid {
		t.Errorf("retarget should head back down: %v > %v", tr.Progress(), mid)
	}
	tr.Update(2)
	assertNear(t, "settled", tr.Progress(), 0)
}

func TestScrollTrackerInput(t *testing.T) {
	tr := newTestTracker(3, 600)
	tr.SetInput(func(*ScrollTracker) float64 { return 120 })
	tr.Update(1.0 / 60)
	tr.Update(1.0 / 60)
	assertNear(t, "offset", tr.Offset(), 240)
	assertNear(t, "progress", tr.Progress(), 0.2)
}
