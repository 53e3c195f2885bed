package scrollstage

import (
	"errors"
	"math"
	"testing"
)

type fixedProgress float64

func (p fixedProgress) Progress() float64 { return float64(p) }

func newTestAnimator(t *testing.T, cfg Config, n int) (*Animator, *Node, []*Node) {
	t.Helper()
	group := NewGroup("group")
	box := NewBoxGeometry(1, 1, 1)
	meshes := make([]*Node, n)
	for i := range meshes {
		meshes[i] = NewMesh(string(rune('a'+i)), box)
		group.AddChild(meshes[i])
	}
	a, err := NewAnimator(cfg, group, meshes)
	if err != nil {
		t.Fatal(err)
	}
	return a, group, meshes
}

func TestNewAnimatorRejectsBadMeshes(t *testing.T) {
	box := NewBoxGeometry(1, 1, 1)
	if _, err := NewAnimator(DefaultConfig(), nil, []*Node{NewMesh("", box)}); !errors.Is(err, ErrEmptyMeshName) {
		t.Errorf("empty name: %v", err)
	}
	if _, err := NewAnimator(DefaultConfig(), nil, []*Node{NewMesh("a", box), NewMesh("a", box)}); !errors.Is(err, ErrDuplicateMesh) {
		t.Errorf("duplicate: %v", err)
	}
	if _, err := NewAnimator(DefaultConfig(), nil, []*Node{nil}); err == nil {
		t.Error("nil mesh should fail")
	}
	bad := DefaultConfig()
	bad.MouseSmoothing = 0
	if _, err := NewAnimator(bad, nil, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("bad config: %v", err)
	}
}

func TestAnimatorHiddenScale(t *testing.T) {
	a, _, meshes := newTestAnimator(t, DefaultConfig(), 4)
	st := a.Frame(0.05)
	if st.ScalePhase != ScaleHidden {
		t.Errorf("phase = %s", st.ScalePhase)
	}
	for _, m := range meshes {
		assertNear(t, m.Name, m.Scale.X, 0.01)
	}
}

func TestAnimatorGrowStagger(t *testing.T) {
	a, _, meshes := newTestAnimator(t, DefaultConfig(), 4)
	a.Frame(0.225)
	assertNear(t, "first", meshes[0].Scale.X, 0.58)
	if !(meshes[3].Scale.X < meshes[2].Scale.X && meshes[2].Scale.X < meshes[1].Scale.X && meshes[1].Scale.X < meshes[0].Scale.X) {
		t.Errorf("stagger order broken: %v %v %v %v",
			meshes[0].Scale.X, meshes[1].Scale.X, meshes[2].Scale.X, meshes[3].Scale.X)
	}
	if meshes[0].Scale.X != meshes[0].Scale.Y || meshes[0].Scale.Y != meshes[0].Scale.Z {
		t.Error("scale should be uniform")
	}
}

func TestAnimatorGroupPose(t *testing.T) {
	a, group, _ := newTestAnimator(t, DefaultConfig(), 1)
	group.Position.Z = 3
	group.Rotation.Z = 0.5

	a.SetRawMouse(Vec2{1, 0.5})
	st := a.Frame(0.65)

	// One smoothing step: mouse = (0.05, 0.025).
	tilt := Vec2{0.025 * 0.15, 0.05 * 0.15}
	assertNear(t, "tilt.X", st.Tilt.X, tilt.X)
	assertNear(t, "tilt.Y", st.Tilt.Y, tilt.Y)
	assertNear(t, "pos.X", group.Position.X, 2.6)
	assertNear(t, "pos.Y", group.Position.Y, -1)
	assertNear(t, "rot.X", group.Rotation.X, math.Pi+tilt.X)
	assertNear(t, "rot.Y", group.Rotation.Y, 0.7*math.Pi+tilt.Y)
	assertNear(t, "pos.Z untouched", group.Position.Z, 3)
	assertNear(t, "rot.Z untouched", group.Rotation.Z, 0.5)
	if !group.transformDirty {
		t.Error("group should be marked dirty")
	}
}

func TestAnimatorSweepMid(t *testing.T) {
	a, group, _ := newTestAnimator(t, DefaultConfig(), 1)
	st := a.Frame(0.75)
	if st.Motion.Phase != MotionSweep {
		t.Errorf("phase = %s", st.Motion.Phase)
	}
	assertNear(t, "x", group.Position.X, 1.2)
}

func TestAnimatorClampsProgress(t *testing.T) {
	a, _, _ := newTestAnimator(t, DefaultConfig(), 1)
	if st := a.Frame(1.7); st.Progress != 1 {
		t.Errorf("above = %v", st.Progress)
	}
	if st := a.Frame(-0.2); st.Progress != 0 {
		t.Errorf("below = %v", st.Progress)
	}
}

func TestAnimatorNaNReusesPrevious(t *testing.T) {
	a, _, meshes := newTestAnimator(t, DefaultConfig(), 1)
	a.Frame(0.3)
	before := meshes[0].Scale.X
	st := a.Frame(math.NaN())
	assertNear(t, "progress", st.Progress, 0.3)
	assertNear(t, "scale", meshes[0].Scale.X, before)
}

func TestAnimatorIgnoresNonFiniteMouse(t *testing.T) {
	a, _, _ := newTestAnimator(t, DefaultConfig(), 1)
	a.SetRawMouse(Vec2{1, 1})
	a.SetRawMouse(Vec2{math.NaN(), 0})
	a.SetRawMouse(Vec2{0, math.Inf(1)})
	st := a.Frame(0)
	assertNear(t, "mouse.X", st.Mouse.X, 0.05)
	assertNear(t, "mouse.Y", st.Mouse.Y, 0.05)
}

func TestAnimatorHoverSwell(t *testing.T) {
	a, _, meshes := newTestAnimator(t, DefaultConfig(), 2)
	a.SetHovered("a")
	var st FrameState
	for i := 0; i < 200; i++ {
		st = a.Frame(0.4)
	}
	if st.Hovered != "a" {
		t.Errorf("Hovered = %q", st.Hovered)
	}
	if math.Abs(meshes[0].Scale.X-1.15*1.2) > 1e-3 {
		t.Errorf("hovered scale = %v, want ≈ 1.38", meshes[0].Scale.X)
	}
	assertNear(t, "other", meshes[1].Scale.X, 1.15)

	a.ClearHovered()
	for i := 0; i < 200; i++ {
		a.Frame(0.4)
	}
	if math.Abs(a.HoverScale("a")-1) > 1e-3 {
		t.Errorf("released hover = %v", a.HoverScale("a"))
	}
}

func TestAnimatorHoverWhileHidden(t *testing.T) {
	a, _, meshes := newTestAnimator(t, DefaultConfig(), 2)
	a.SetHovered("a")
	for i := 0; i < 200; i++ {
		a.Frame(0.05)
	}
	if math.Abs(meshes[0].Scale.X-ScaleCollapsed*1.2) > 1e-5 {
		t.Errorf("hovered scale = %v, want ≈ 0.012", meshes[0].Scale.X)
	}
	assertNear(t, "other", meshes[1].Scale.X, ScaleCollapsed)
}

func TestAnimatorHoverUnknownName(t *testing.T) {
	a, _, _ := newTestAnimator(t, DefaultConfig(), 1)
	a.SetHovered("nope")
	if st := a.Frame(0.4); st.Hovered != "" {
		t.Errorf("unknown name hovered: %q", st.Hovered)
	}
}

func TestAnimatorFreezePolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScaleBeyond = "freeze"
	a, _, meshes := newTestAnimator(t, cfg, 1)
	a.Frame(0.4)
	assertNear(t, "hold", meshes[0].Scale.X, 1.15)
	meshes[0].SetUniformScale(2)
	a.Frame(0.9)
	assertNear(t, "frozen", meshes[0].Scale.X, 2)
}

func TestAnimatorSweepHoldPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FinalSweep = "hold"
	a, group, _ := newTestAnimator(t, cfg, 1)
	st := a.Frame(0.9)
	if st.Motion.Phase != MotionHold {
		t.Errorf("phase = %s", st.Motion.Phase)
	}
	assertNear(t, "x", group.Position.X, 2.6)
}

func TestAnimatorSkipsDisposedNodes(t *testing.T) {
	a, group, meshes := newTestAnimator(t, DefaultConfig(), 2)
	meshes[1].Dispose()
	a.Frame(0.4)
	assertNear(t, "live mesh", meshes[0].Scale.X, 1.15)
	group.Dispose()
	a.Frame(0.5) // must not panic
}

func TestAnimatorNoMeshes(t *testing.T) {
	group := NewGroup("g")
	a, err := NewAnimator(DefaultConfig(), group, nil)
	if err != nil {
		t.Fatal(err)
	}
	a.Frame(0.5)
	assertNear(t, "x", group.Position.X, 1.3)
}

// --- Attach / Detach ---

func TestAnimatorAttachRunsEachFrame(t *testing.T) {
	a, group, meshes := newTestAnimator(t, DefaultConfig(), 2)
	s := NewScene()
	s.SetPointerSource(nil)
	s.Root().AddChild(group)

	a.Attach(s, fixedProgress(0.4))
	if !a.Attached() {
		t.Fatal("should be attached")
	}
	s.Update()
	assertNear(t, "progress", a.State().Progress, 0.4)
	assertNear(t, "scale", meshes[0].Scale.X, 1.15)
}

func TestAnimatorDetachRemovesAllHandlers(t *testing.T) {
	a, _, _ := newTestAnimator(t, DefaultConfig(), 1)
	s := NewScene()
	s.SetPointerSource(nil)

	a.Attach(s, fixedProgress(0.2))
	r := &s.handlers
	if len(r.frame) != 1 || len(r.pointerMove) != 1 || len(r.pointerEnter) != 1 || len(r.pointerLeave) != 1 {
		t.Fatalf("handlers after attach: %d %d %d %d",
			len(r.frame), len(r.pointerMove), len(r.pointerEnter), len(r.pointerLeave))
	}

	a.Detach()
	if len(r.frame)+len(r.pointerMove)+len(r.pointerEnter)+len(r.pointerLeave) != 0 {
		t.Error("detach should remove every handler")
	}
	if a.Attached() {
		t.Error("should not be attached")
	}
	a.Detach() // safe twice

	before := a.State()
	s.Update()
	if a.State() != before {
		t.Error("detached animator should not run")
	}
}

func TestAnimatorReattachDoesNotDuplicate(t *testing.T) {
	a, _, _ := newTestAnimator(t, DefaultConfig(), 1)
	s := NewScene()
	a.Attach(s, fixedProgress(0))
	a.Attach(s, fixedProgress(0))
	if len(s.handlers.frame) != 1 {
		t.Errorf("frame handlers = %d, want 1", len(s.handlers.frame))
	}
}

func TestAnimatorAttachDefaultsToSceneTracker(t *testing.T) {
	a, _, _ := newTestAnimator(t, DefaultConfig(), 1)
	s := NewScene()
	tracker := NewScrollTracker(3)
	tracker.SetInput(nil)
	s.SetScrollTracker(tracker)
	a.Attach(s, nil)
	if a.source != ProgressSource(tracker) {
		t.Error("nil source should use the scene's tracker")
	}
}

func TestAnimatorCameraFollow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CameraFollow = true
	a, group, _ := newTestAnimator(t, cfg, 1)
	s := NewScene()
	a.Attach(s, fixedProgress(0))
	if s.Camera().followTarget != group {
		t.Error("camera should follow the group")
	}
	a.Detach()
	if s.Camera().followTarget != nil {
		t.Error("detach should stop following")
	}
}

func TestAnimatorPointerHover(t *testing.T) {
	group := NewGroup("group")
	box := NewMesh("box", NewBoxGeometry(1, 1, 1))
	box.EntityID = 9
	group.AddChild(box)
	a, err := NewAnimator(DefaultConfig(), group, []*Node{box})
	if err != nil {
		t.Fatal(err)
	}

	s := NewScene()
	s.SetPointerSource(nil)
	s.SetViewport(800, 600)
	s.Root().AddChild(group)
	a.Attach(s, fixedProgress(0.05))

	s.InjectMove(400, 300)
	s.Update()
	st := a.State()
	if st.Hovered != "box" {
		t.Fatalf("Hovered = %q, want box", st.Hovered)
	}
	// One step from (0,0) toward the normalized center.
	if st.Mouse != (Vec2{}) {
		t.Errorf("Mouse = %v, want origin", st.Mouse)
	}

	s.InjectMove(5, 5)
	s.Update()
	if st := a.State(); st.Hovered != "" {
		t.Errorf("after leaving: Hovered = %q", st.Hovered)
	}
	if a.State().Mouse.X >= 0 || a.State().Mouse.Y <= 0 {
		t.Errorf("mouse should drift toward top-left: %v", a.State().Mouse)
	}
}

func TestAnimatorDisperserStepsOnFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disperse.Enabled = true
	cfg.Disperse.AutoStartDelay = 0
	a, _, meshes := newTestAnimator(t, cfg, 1)
	if a.Disperser() == nil {
		t.Fatal("disperser should exist when enabled")
	}
	s := NewScene()
	s.SetPointerSource(nil)
	a.Attach(s, fixedProgress(0.4))
	a.Disperser().Start()
	for i := 0; i < 120; i++ {
		s.Update()
	}
	if a.Disperser().Progress() != 1 {
		t.Errorf("progress = %v", a.Disperser().Progress())
	}
	assertVec3(t, "scattered", meshes[0].Position, defaultDisperseOffsets[0])
	// Scale is still driven by the timeline.
	assertNear(t, "scale", meshes[0].Scale.X, 1.15)
}

func TestAnimatorLeaveIgnoresForeignMesh(t *testing.T) {
	a, _, meshes := newTestAnimator(t, DefaultConfig(), 2)
	foreign := NewMesh("a", NewBoxGeometry(1, 1, 1))

	a.onPointerEnter(PointerContext{Node: meshes[0], Name: meshes[0].Name})
	a.onPointerLeave(PointerContext{Node: foreign, Name: foreign.Name})
	if st := a.Frame(0.4); st.Hovered != meshes[0].Name {
		t.Errorf("foreign leave cleared hover: %q", st.Hovered)
	}
	a.onPointerLeave(PointerContext{Node: meshes[0], Name: meshes[0].Name})
	if st := a.Frame(0.4); st.Hovered != "" {
		t.Errorf("owned leave should clear hover, got %q", st.Hovered)
	}
}
