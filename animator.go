package scrollstage

import (
	"fmt"
	"math"
)

// ProgressSource supplies the scroll progress sampled once per frame.
type ProgressSource interface {
	Progress() float64
}

// FrameState is the snapshot produced by one Animator.Frame call.
type FrameState struct {
	Progress   float64
	ScalePhase ScalePhase
	// ScaleT is the local t of the grow phase, 0 before it and 1 after.
	ScaleT  float64
	Motion  Motion
	Mouse   Vec2
	Tilt    Vec2
	Hovered string
}

// Animator composes the smoothed mouse, hover scales, staggered mesh scales,
// and group motion into node transforms once per frame.
type Animator struct {
	cfg      Config
	timeline Timeline

	group  *Node
	meshes []*Node
	byName map[string]*Node

	smoother *Smoother
	hover    *HoverScales
	hovered  HoverRegister
	raw      Vec2

	progress float64
	state    FrameState

	disperser *Disperser

	scene   *Scene
	source  ProgressSource
	handles []CallbackHandle
}

// NewAnimator validates cfg and binds the animator to the group it moves and
// the meshes it scales. Mesh order fixes the stagger index. Names must be
// unique and non-empty.
func NewAnimator(cfg Config, group *Node, meshes []*Node) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Animator{
		cfg:      cfg,
		timeline: cfg.Timeline(),
		group:    group,
		meshes:   meshes,
		byName:   make(map[string]*Node, len(meshes)),
		smoother: NewSmoother(cfg.MouseSmoothing),
		hover:    NewHoverScales(cfg.HoverSmoothing, cfg.HoverScale),
	}
	for i, m := range meshes {
		if m == nil {
			return nil, fmt.Errorf("animator: mesh %d is nil", i)
		}
		if m.Name == "" {
			return nil, fmt.Errorf("animator: mesh %d: %w", i, ErrEmptyMeshName)
		}
		if _, dup := a.byName[m.Name]; dup {
			return nil, fmt.Errorf("animator: mesh %q: %w", m.Name, ErrDuplicateMesh)
		}
		a.byName[m.Name] = m
		a.hover.Register(m.Name)
	}
	if cfg.Disperse.Enabled {
		a.disperser = NewDisperser(cfg.Disperse, meshes)
	}
	return a, nil
}

// Config returns the settings the animator was built with.
func (a *Animator) Config() Config {
	return a.cfg
}

// Disperser returns the scatter effect, or nil when disabled.
func (a *Animator) Disperser() *Disperser {
	return a.disperser
}

// SetRawMouse records the latest normalized pointer position. Non-finite
// components are ignored.
func (a *Animator) SetRawMouse(v Vec2) {
	if !isFinite(v.X) || !isFinite(v.Y) {
		return
	}
	a.raw = v
}

// SetHovered marks the named mesh as hovered. Unknown names are ignored.
func (a *Animator) SetHovered(name string) {
	if _, ok := a.byName[name]; !ok {
		return
	}
	a.hovered.Set(name)
}

// ClearHovered marks no mesh as hovered.
func (a *Animator) ClearHovered() {
	a.hovered.Clear()
}

// HoverScale returns the current hover multiplier of the named mesh.
func (a *Animator) HoverScale(name string) float64 {
	return a.hover.Scale(name)
}

// State returns the snapshot of the last Frame call.
func (a *Animator) State() FrameState {
	return a.state
}

// Frame advances the animation by one frame at the given scroll progress.
// Progress is clamped to [0, 1]; NaN reuses the previous frame's progress.
// Meshes are scaled first, then the group pose is written. The group's Z
// position and rotation are left untouched.
func (a *Animator) Frame(progress float64) FrameState {
	if math.IsNaN(progress) {
		progress = a.progress
	}
	progress = clamp01(progress)
	a.progress = progress

	mouse := a.smoother.Step(a.raw)
	name, ok := a.hovered.Get()
	a.hover.Step(name, ok)
	tilt := Tilt(mouse, a.cfg.TiltInfluence)

	n := len(a.meshes)
	for i, m := range a.meshes {
		if m.IsDisposed() {
			continue
		}
		base, _, write := a.timeline.BaseScale(progress, i, n)
		if !write {
			continue
		}
		m.SetUniformScale(base * a.hover.Scale(m.Name))
	}

	motion := a.timeline.MotionAt(progress, tilt)
	if g := a.group; g != nil && !g.IsDisposed() {
		g.Position.X = motion.Position.X
		g.Position.Y = motion.Position.Y
		g.Rotation.X = motion.Rotation.X
		g.Rotation.Y = motion.Rotation.Y
		g.MarkDirty()
	}

	phase, t := ScalePhaseAt(progress)
	a.state = FrameState{
		Progress:   progress,
		ScalePhase: phase,
		ScaleT:     t,
		Motion:     motion,
		Mouse:      mouse,
		Tilt:       tilt,
	}
	if ok {
		a.state.Hovered = name
	}
	return a.state
}

// Attach registers the per-frame and pointer handlers on s. Each frame the
// animator samples src (the scene's ScrollTracker when src is nil), steps
// the disperser, and runs Frame. Attaching again detaches first.
func (a *Animator) Attach(s *Scene, src ProgressSource) {
	a.Detach()
	if src == nil {
		if s.scroll == nil {
			s.SetScrollTracker(NewScrollTracker(DefaultScrollPages))
		}
		src = s.scroll
	}
	a.scene = s
	a.source = src

	a.handles = append(a.handles,
		s.OnFrame(a.onFrame),
		s.OnPointerMove(a.onPointerMove),
		s.OnPointerEnter(a.onPointerEnter),
		s.OnPointerLeave(a.onPointerLeave),
	)
	if a.cfg.CameraFollow && a.group != nil {
		s.camera.Follow(a.group, a.cfg.CameraFollowLerp)
	}
	if s.debug {
		_, _ = fmt.Fprintf(debugOut, "[scrollstage] animator attached: %d meshes\n", len(a.meshes))
	}
}

// Detach removes every handler registered by Attach together. It is safe to
// call when not attached.
func (a *Animator) Detach() {
	for _, h := range a.handles {
		h.Remove()
	}
	a.handles = a.handles[:0]
	if a.scene != nil {
		if a.cfg.CameraFollow && a.scene.camera.followTarget == a.group {
			a.scene.camera.Unfollow()
		}
		a.scene = nil
	}
	a.source = nil
}

// Attached reports whether the animator is bound to a scene.
func (a *Animator) Attached() bool {
	return a.scene != nil
}

func (a *Animator) onFrame(dt float64) {
	if a.disperser != nil {
		a.disperser.Update(dt)
	}
	prev := a.state
	st := a.Frame(a.source.Progress())
	if a.scene != nil && a.scene.debug {
		debugLogFrame(prev, st)
	}
}

func (a *Animator) onPointerMove(ctx PointerContext) {
	a.SetRawMouse(ctx.Normalized)
	if a.owns(ctx.Node) {
		a.hovered.Set(ctx.Name)
	}
}

func (a *Animator) onPointerEnter(ctx PointerContext) {
	if a.owns(ctx.Node) {
		a.hovered.Set(ctx.Name)
	}
}

func (a *Animator) onPointerLeave(ctx PointerContext) {
	if a.owns(ctx.Node) {
		a.hovered.Clear()
	}
}

func (a *Animator) owns(n *Node) bool {
	return n != nil && a.byName[n.Name] == n
}
