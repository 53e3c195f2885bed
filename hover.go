package scrollstage

const (
	// DefaultHoverSmoothing is the per-frame blend factor of the hover filter.
	DefaultHoverSmoothing = 0.1
	// DefaultHoverScale is the scale multiplier a hovered mesh approaches.
	DefaultHoverScale = 1.2
)

// HoverRegister holds the name of the mesh under the pointer. Pointer events
// write it between frames; the frame reads it once at the start.
type HoverRegister struct {
	name  string
	valid bool
}

// Set marks name as hovered, replacing any previous mesh.
func (r *HoverRegister) Set(name string) {
	r.name = name
	r.valid = true
}

// Clear marks no mesh as hovered.
func (r *HoverRegister) Clear() {
	r.name = ""
	r.valid = false
}

// Get returns the hovered mesh name and whether one is set.
func (r *HoverRegister) Get() (string, bool) {
	return r.name, r.valid
}

// HoverScales is the per-mesh hover multiplier store. Every registered mesh
// is stepped every frame, so meshes relax back to 1.0 once the pointer
// moves away.
type HoverScales struct {
	// Smoothing is the blend factor applied each step.
	Smoothing float64
	// Target is the multiplier the hovered mesh approaches.
	Target float64

	names  []string
	scales map[string]float64
}

// NewHoverScales creates an empty store.
func NewHoverScales(smoothing, target float64) *HoverScales {
	return &HoverScales{
		Smoothing: smoothing,
		Target:    target,
		scales:    make(map[string]float64),
	}
}

// Register adds names with an initial multiplier of 1.0. Names that are
// already registered keep their current value.
func (h *HoverScales) Register(names ...string) {
	if h.scales == nil {
		h.scales = make(map[string]float64, len(names))
	}
	for _, name := range names {
		if _, ok := h.scales[name]; ok {
			continue
		}
		h.names = append(h.names, name)
		h.scales[name] = 1
	}
}

// Step advances every registered multiplier one frame. hovered is the
// current hover register value; ok=false means nothing is hovered.
func (h *HoverScales) Step(hovered string, ok bool) {
	for _, name := range h.names {
		target := 1.0
		if ok && name == hovered {
			target = h.Target
		}
		h.scales[name] = approach(h.scales[name], target, h.Smoothing)
	}
}

// Scale returns the multiplier for name. Unregistered names report 1.0.
func (h *HoverScales) Scale(name string) float64 {
	if s, ok := h.scales[name]; ok {
		return s
	}
	return 1
}

// Len returns the number of registered meshes.
func (h *HoverScales) Len() int {
	return len(h.names)
}

// Clear drops every registered mesh.
func (h *HoverScales) Clear() {
	h.names = nil
	h.scales = make(map[string]float64)
}
