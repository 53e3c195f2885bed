package scrollstage

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitPolygon is a convex polygon hit area in screen coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	return convexContains(p.Points, x, y)
}

func convexContains(pts []Vec2, x, y float64) bool {
	n := len(pts)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1, y1 := pts[i].X, pts[i].Y
		j := (i + 1) % n
		x2, y2 := pts[j].X, pts[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Pointer state ---

type pointerState struct {
	seen      bool
	lastX     float64
	lastY     float64
	hoverNode *Node // last node under the pointer (for enter/leave)
}

// --- Handler registry ---

type frameHandler struct {
	id uint32
	fn func(dt float64)
}

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	frame        []frameHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	nextID       uint32

	// While dispatching, removals only clear fn; the slices are compacted
	// once the outermost dispatch ends.
	dispatching int
	stale       bool
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
	frame bool
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// a no-op. Removing from inside a handler is allowed; the removed callback
// does not fire for the rest of the current dispatch.
func (h CallbackHandle) Remove() {
	r := h.reg
	if r == nil {
		return
	}
	if h.frame {
		r.frame = removeFrameHandler(r.frame, h.id, r.dispatching > 0, &r.stale)
		return
	}
	inDispatch := r.dispatching > 0
	switch h.event {
	case EventPointerMove:
		r.pointerMove = removePointerHandler(r.pointerMove, h.id, inDispatch, &r.stale)
	case EventPointerEnter:
		r.pointerEnter = removePointerHandler(r.pointerEnter, h.id, inDispatch, &r.stale)
	case EventPointerLeave:
		r.pointerLeave = removePointerHandler(r.pointerLeave, h.id, inDispatch, &r.stale)
	}
}

func removePointerHandler(s []pointerHandler, id uint32, inDispatch bool, stale *bool) []pointerHandler {
	for i := range s {
		if s[i].id != id || s[i].fn == nil {
			continue
		}
		if inDispatch {
			s[i].fn = nil
			*stale = true
			return s
		}
		copy(s[i:], s[i+1:])
		s[len(s)-1] = pointerHandler{}
		return s[:len(s)-1]
	}
	return s
}

func removeFrameHandler(s []frameHandler, id uint32, inDispatch bool, stale *bool) []frameHandler {
	for i := range s {
		if s[i].id != id || s[i].fn == nil {
			continue
		}
		if inDispatch {
			s[i].fn = nil
			*stale = true
			return s
		}
		copy(s[i:], s[i+1:])
		s[len(s)-1] = frameHandler{}
		return s[:len(s)-1]
	}
	return s
}

func (r *handlerRegistry) beginDispatch() {
	r.dispatching++
}

// endDispatch drops cleared entries once no dispatch is running.
func (r *handlerRegistry) endDispatch() {
	r.dispatching--
	if r.dispatching > 0 || !r.stale {
		return
	}
	r.stale = false
	r.frame = compactFrameHandlers(r.frame)
	r.pointerMove = compactPointerHandlers(r.pointerMove)
	r.pointerEnter = compactPointerHandlers(r.pointerEnter)
	r.pointerLeave = compactPointerHandlers(r.pointerLeave)
}

func compactPointerHandlers(s []pointerHandler) []pointerHandler {
	n := 0
	for _, h := range s {
		if h.fn != nil {
			s[n] = h
			n++
		}
	}
	clear(s[n:])
	return s[:n]
}

func compactFrameHandlers(s []frameHandler) []frameHandler {
	n := 0
	for _, h := range s {
		if h.fn != nil {
			s[n] = h
			n++
		}
	}
	clear(s[n:])
	return s[:n]
}

// firePointer calls every live handler in hs. Entries cleared by a Remove
// during the loop are skipped; handlers added during the loop wait for the
// next dispatch.
func (s *Scene) firePointer(hs *[]pointerHandler, ctx PointerContext) {
	r := &s.handlers
	r.beginDispatch()
	defer r.endDispatch()
	n := len(*hs)
	for i := 0; i < n && i < len(*hs); i++ {
		if fn := (*hs)[i].fn; fn != nil {
			fn(ctx)
		}
	}
}

// fireFrame is firePointer for frame handlers.
func (s *Scene) fireFrame(dt float64) {
	r := &s.handlers
	r.beginDispatch()
	defer r.endDispatch()
	n := len(r.frame)
	for i := 0; i < n && i < len(r.frame); i++ {
		if fn := r.frame[i].fn; fn != nil {
			fn(dt)
		}
	}
}

func (r *handlerRegistry) nextHandlerID() uint32 {
	r.nextID++
	return r.nextID
}

// --- Scene-level callback registration ---

// OnFrame registers fn to run once per Update, after input and scroll have
// been processed. dt is the tick duration in seconds.
func (s *Scene) OnFrame(fn func(dt float64)) CallbackHandle {
	id := s.handlers.nextHandlerID()
	s.handlers.frame = append(s.handlers.frame, frameHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, frame: true}
}

// OnPointerMove registers a scene-level callback fired whenever the pointer
// moves, whether or not it is over a mesh. ctx.Node is the mesh under the
// pointer, or nil.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.nextHandlerID()
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnPointerEnter registers a scene-level callback fired when the pointer
// starts hovering a mesh.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.nextHandlerID()
	s.handlers.pointerEnter = append(s.handlers.pointerEnter, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerEnter}
}

// OnPointerLeave registers a scene-level callback fired when the pointer
// stops hovering a mesh.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.nextHandlerID()
	s.handlers.pointerLeave = append(s.handlers.pointerLeave, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerLeave}
}

// --- Hit testing ---

// HitTest returns the nearest interactable mesh whose projected face
// contains the screen point, or nil.
func (s *Scene) HitTest(sx, sy float64) *Node {
	updateWorldTransform(s.root, identityMatrix, false)
	s.collectFaces()
	s.sortFaces()
	return s.hitFaces(sx, sy)
}

// hitFaces walks the sorted face list nearest-first.
func (s *Scene) hitFaces(sx, sy float64) *Node {
	for i := len(s.faces) - 1; i >= 0; i-- {
		f := &s.faces[i]
		if !f.node.Interactable {
			continue
		}
		if convexContains(s.points[f.start:f.start+f.count], sx, sy) {
			return f.node
		}
	}
	return nil
}

// --- Input processing ---

func ebitenCursor() (x, y float64, ok bool) {
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), true
}

// processInput routes injected events first and falls back to the live
// pointer source when none are queued.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.pointerSource == nil {
		return
	}
	x, y, ok := s.pointerSource()
	if !ok {
		return
	}
	s.processPointer(x, y)
}

// processPointer hit tests (sx, sy) and fires leave, enter, and move in
// that order. Non-finite coordinates are dropped.
func (s *Scene) processPointer(sx, sy float64) {
	if !isFinite(sx) || !isFinite(sy) {
		return
	}
	ps := &s.pointer
	target := s.HitTest(sx, sy)

	if target != ps.hoverNode {
		if prev := ps.hoverNode; prev != nil {
			ctx := s.pointerContext(prev, sx, sy)
			if prev.OnPointerLeave != nil {
				prev.OnPointerLeave(ctx)
			}
			s.firePointer(&s.handlers.pointerLeave, ctx)
			s.emitInteractionEvent(EventPointerLeave, prev, sx, sy)
		}
		if target != nil {
			ctx := s.pointerContext(target, sx, sy)
			if target.OnPointerEnter != nil {
				target.OnPointerEnter(ctx)
			}
			s.firePointer(&s.handlers.pointerEnter, ctx)
			s.emitInteractionEvent(EventPointerEnter, target, sx, sy)
		}
		ps.hoverNode = target
	}

	if ps.seen && sx == ps.lastX && sy == ps.lastY {
		return
	}
	ps.seen = true
	ps.lastX, ps.lastY = sx, sy

	ctx := s.pointerContext(target, sx, sy)
	if target != nil && target.OnPointerMove != nil {
		target.OnPointerMove(ctx)
	}
	s.firePointer(&s.handlers.pointerMove, ctx)
	if target != nil {
		s.emitInteractionEvent(EventPointerMove, target, sx, sy)
	}
}

// HoveredNode returns the mesh currently under the pointer, or nil.
func (s *Scene) HoveredNode() *Node {
	return s.pointer.hoverNode
}

func (s *Scene) pointerContext(n *Node, sx, sy float64) PointerContext {
	ctx := PointerContext{
		Node:       n,
		ScreenX:    sx,
		ScreenY:    sy,
		Normalized: s.camera.NormalizePointer(sx, sy),
	}
	if n != nil {
		ctx.Name = n.Name
		ctx.EntityID = n.EntityID
		ctx.UserData = n.UserData
	}
	return ctx
}

// emitInteractionEvent forwards an interaction event to the ECS bridge.
func (s *Scene) emitInteractionEvent(eventType EventType, node *Node, sx, sy float64) {
	if s.store == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:       eventType,
		EntityID:   node.EntityID,
		Name:       node.Name,
		ScreenX:    sx,
		ScreenY:    sy,
		Normalized: s.camera.NormalizePointer(sx, sy),
	})
}
