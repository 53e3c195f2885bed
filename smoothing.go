package scrollstage

// DefaultMouseSmoothing is the per-frame blend factor of the mouse filter.
const DefaultMouseSmoothing = 0.05

// approach moves cur toward target by the fraction k.
func approach(cur, target, k float64) float64 {
	return cur + (target-cur)*k
}

// Smoother is an exponential low-pass filter over a 2D value. It is stepped
// once per frame whether or not the raw input changed, so the output keeps
// gliding toward the last raw value.
type Smoother struct {
	// Alpha is the blend factor applied each step.
	Alpha float64

	value Vec2
}

// NewSmoother returns a filter at the origin with blend factor alpha.
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{Alpha: alpha}
}

// Step advances the filter one frame toward raw and returns the new value.
// Each axis is filtered independently; no clamping is applied.
func (s *Smoother) Step(raw Vec2) Vec2 {
	s.value.X = approach(s.value.X, raw.X, s.Alpha)
	s.value.Y = approach(s.value.Y, raw.Y, s.Alpha)
	return s.value
}

// Value returns the current smoothed value without stepping.
func (s *Smoother) Value() Vec2 {
	return s.value
}
