package scrollstage

// DefaultStaggerSpread is the delay fraction given to the last mesh.
const DefaultStaggerSpread = 0.1

// StaggerDelay returns the progress delay for the object at index among n.
func StaggerDelay(index, n int, spread float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(index) / float64(n) * spread
}

// StaggeredProgress remaps the phase progress t for the object at index
// among n so later objects start later yet every object reaches 1 when t
// does. Index 0 always follows t exactly.
func StaggeredProgress(t float64, index, n int, spread float64) float64 {
	delay := StaggerDelay(index, n, spread)
	denom := 1 - delay
	if denom <= 0 {
		if t >= 1 {
			return 1
		}
		return 0
	}
	return clamp01((t - delay) / denom)
}
