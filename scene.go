package scrollstage

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type       EventType
	EntityID   uint32
	Name       string
	ScreenX    float64
	ScreenY    float64
	Normalized Vec2
}

// Scene is the top-level object that owns the node tree, the camera, input
// state, the scroll tracker, and render buffers.
type Scene struct {
	root   *Node
	camera *Camera
	store  EntityStore
	debug  bool

	// ClearColor fills the screen before faces are drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color
	// Ambient is the light level every face receives, in [0, 1].
	Ambient float64
	// LightDir points from the scene toward the light, in view space.
	LightDir Vec3

	scroll *ScrollTracker

	// Render state
	faces    []faceCommand
	sortBuf  []faceCommand
	points   []Vec2
	viewBuf  []Vec3
	verts    []ebiten.Vertex
	indices  []uint16
	showFPS  bool
	lastDraw debugStats

	// Input state
	handlers      handlerRegistry
	pointer       pointerState
	pointerSource func() (x, y float64, ok bool)
	injectQueue   []syntheticEvent

	// Automation
	testRunner       *TestRunner
	screenshotQueue  []string
	ScreenshotDir    string
	ScreenshotFormat ImageFormat
	// ScreenshotScale downsizes captures when in (0, 1).
	ScreenshotScale float64
}

// NewScene creates a new scene with a root group and a default camera.
func NewScene() *Scene {
	return &Scene{
		root:          NewGroup("root"),
		camera:        NewCamera(Rect{}),
		Ambient:       0.55,
		LightDir:      Vec3{0.3, 0.6, 1}.Normalize(),
		pointerSource: ebitenCursor,
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root group.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetViewport resizes the camera viewport and the scroll tracker's view.
func (s *Scene) SetViewport(w, h float64) {
	vp := Rect{Width: w, Height: h}
	if s.camera.Viewport != vp {
		s.camera.Viewport = vp
		s.camera.MarkDirty()
	}
	if s.scroll != nil {
		s.scroll.Resize(h)
	}
}

// SetScrollTracker installs the scroll sampler stepped by Update.
func (s *Scene) SetScrollTracker(t *ScrollTracker) {
	s.scroll = t
	if t != nil && s.camera.Viewport.Height > 0 {
		t.Resize(s.camera.Viewport.Height)
	}
}

// ScrollTracker returns the installed scroll sampler, or nil.
func (s *Scene) ScrollTracker() *ScrollTracker {
	return s.scroll
}

// SetPointerSource replaces the cursor reader used by Update. A nil source
// disables live pointer input; injected events still apply.
func (s *Scene) SetPointerSource(fn func() (x, y float64, ok bool)) {
	s.pointerSource = fn
}

// SetShowFPS toggles the FPS/TPS overlay.
func (s *Scene) SetShowFPS(show bool) {
	s.showFPS = show
}

// Update processes input, advances the scroll sampler and camera, and runs
// the frame handlers. It is the per-frame callback of the whole scene.
func (s *Scene) Update() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	dt := float32(1.0 / float64(ebiten.TPS()))

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	// Refresh world transforms first so hit testing sees what was drawn.
	updateWorldTransform(s.root, identityMatrix, false)

	s.camera.update(dt)
	s.processInput()
	if s.scroll != nil {
		s.scroll.Update(dt)
	}

	s.fireFrame(float64(dt))

	if s.debug {
		s.lastDraw.updateTime = time.Since(t0)
	}
}

// Draw projects every visible mesh face through the camera, sorts faces
// back to front, and submits them to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	b := screen.Bounds()
	if s.camera.Viewport.Width == 0 || s.camera.Viewport.Height == 0 {
		s.SetViewport(float64(b.Dx()), float64(b.Dy()))
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		stats.updateTime = s.lastDraw.updateTime
		t0 = time.Now()
	}

	updateWorldTransform(s.root, identityMatrix, false)
	s.collectFaces()

	if s.debug {
		stats.projectTime = time.Since(t0)
		t0 = time.Now()
	}

	s.sortFaces()

	if s.debug {
		stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}

	stats.drawCalls = s.submitFaces(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.faceCount = len(s.faces)
		s.debugLog(stats)
		s.lastDraw = stats
	}

	if s.showFPS {
		drawFPS(screen)
	}
	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, deep trees are reported, and per-frame timing and
// animation state are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug logging is enabled.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
