package scrollstage

import "testing"

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil || s.Root().Type != NodeTypeGroup {
		t.Fatal("root should be a group")
	}
	if s.Camera() == nil {
		t.Fatal("camera should exist")
	}
	assertNear(t, "ambient", s.Ambient, 0.55)
	assertNear(t, "light length", s.LightDir.Len(), 1)
	if s.ScrollTracker() != nil {
		t.Error("scroll tracker should be opt-in")
	}
	if s.ScreenshotDir != "screenshots" || s.ScreenshotFormat != ImageFormatPNG {
		t.Errorf("screenshot defaults = %q, %v", s.ScreenshotDir, s.ScreenshotFormat)
	}
}

func TestSceneSetViewport(t *testing.T) {
	s := NewScene()
	tr := NewScrollTracker(3)
	tr.SetInput(nil)
	s.SetScrollTracker(tr)
	s.SetViewport(1024, 768)
	if vp := s.Camera().Viewport; vp.Width != 1024 || vp.Height != 768 {
		t.Errorf("viewport = %+v", vp)
	}
	if tr.ViewportHeight() != 768 {
		t.Errorf("tracker height = %v, want 768", tr.ViewportHeight())
	}
}

func TestSceneSetScrollTrackerAdoptsViewport(t *testing.T) {
	s := NewScene()
	s.SetViewport(800, 600)
	tr := NewScrollTracker(2)
	s.SetScrollTracker(tr)
	if tr.ViewportHeight() != 600 {
		t.Errorf("tracker height = %v, want 600", tr.ViewportHeight())
	}
	if s.ScrollTracker() != tr {
		t.Error("ScrollTracker should return the installed tracker")
	}
}

func TestSceneSetEntityStore(t *testing.T) {
	s := NewScene()
	store := &recordingStore{}
	s.SetEntityStore(store)
	if s.store != store {
		t.Error("store not set")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	if !s.DebugMode() || !globalDebug {
		t.Error("debug mode should be on")
	}
	s.SetDebugMode(false)
	if s.DebugMode() || globalDebug {
		t.Error("debug mode should be off")
	}
}

func TestSceneOnFrame(t *testing.T) {
	s := NewScene()
	s.SetPointerSource(nil)
	var got []float64
	h := s.OnFrame(func(dt float64) { got = append(got, dt) })
	s.Update()
	s.Update()
	h.Remove()
	s.Update()
	if len(got) != 2 {
		t.Fatalf("calls = %d, want 2", len(got))
	}
	if got[0] <= 0 {
		t.Errorf("dt = %v, want > 0", got[0])
	}
}

func TestSceneOnFrameRemoveDuringUpdate(t *testing.T) {
	s := NewScene()
	s.SetPointerSource(nil)
	calls := 0
	var second CallbackHandle
	s.OnFrame(func(float64) {
		calls++
		second.Remove()
	})
	second = s.OnFrame(func(float64) { calls++ })
	s.Update()
	s.Update()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestSceneUpdateRefreshesTransforms(t *testing.T) {
	s := NewScene()
	s.SetPointerSource(nil)
	n := NewGroup("n")
	s.Root().AddChild(n)
	n.SetPosition(1, 2, 3)
	s.Update()
	assertVec3(t, "world", n.WorldPosition(), Vec3{1, 2, 3})
}

func TestSceneOnFrameRemoveSelf(t *testing.T) {
	s := NewScene()
	s.SetPointerSource(nil)
	var firstCalls, secondCalls int
	var first CallbackHandle
	first = s.OnFrame(func(float64) {
		firstCalls++
		first.Remove()
	})
	s.OnFrame(func(float64) { secondCalls++ })
	s.Update()
	s.Update()
	if firstCalls != 1 || secondCalls != 2 {
		t.Errorf("calls = %d, %d, want 1, 2", firstCalls, secondCalls)
	}
	if n := len(s.handlers.frame); n != 1 {
		t.Errorf("frame handlers = %d, want 1", n)
	}
}
