package scrollstage

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticScroll
	syntheticProgress
)

// syntheticEvent represents a single injected input event. Pointer events
// use screen coordinates (matching what a caller sees in screenshots) and
// go through the same hit testing as real cursor input.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	value            float64
}

// InjectMove queues a pointer move to the given screen coordinates. The
// event is consumed on the next frame's processInput call.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:    syntheticMove,
		screenX: x, screenY: y,
	})
}

// InjectPath queues pointer moves linearly interpolated from (fromX, fromY)
// to (toX, toY), one per frame. Minimum frames is 2.
func (s *Scene) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectScroll queues a scroll of delta pixels on the scene's ScrollTracker.
func (s *Scene) InjectScroll(delta float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScroll, value: delta})
}

// InjectProgress queues a jump of the scene's ScrollTracker to progress p.
func (s *Scene) InjectProgress(p float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticProgress, value: p})
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed (live pointer input is skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		s.processPointer(evt.screenX, evt.screenY)
	case syntheticScroll:
		if s.scroll != nil {
			s.scroll.ScrollBy(evt.value)
		}
	case syntheticProgress:
		if s.scroll != nil {
			s.scroll.SetProgress(evt.value)
		}
	}
	return true
}
