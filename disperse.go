package scrollstage

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DisperseConfig configures the scatter effect that flies each mesh away
// from its base position.
type DisperseConfig struct {
	Enabled bool `json:"enabled"`
	// AutoStartDelay starts the effect this many seconds after attach.
	// Zero means the effect only starts on an explicit Start call.
	AutoStartDelay float64 `json:"auto_start_delay"`
	// Speed is the linear progress gained per second before easing.
	Speed float64 `json:"speed"`
	// Spin adds a tumbling rotation that grows with progress.
	Spin bool `json:"spin"`
	// Offsets are cycled through by mesh index. Empty uses a built-in set.
	Offsets []Vec3 `json:"offsets"`
}

// DefaultDisperseConfig returns a disabled effect with stock timing.
func DefaultDisperseConfig() DisperseConfig {
	return DisperseConfig{
		AutoStartDelay: 5,
		Speed:          0.8,
		Spin:           true,
	}
}

func (c DisperseConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if !isFinite(c.Speed) || c.Speed <= 0 {
		return fmt.Errorf("%w: disperse.speed %v must be positive", ErrInvalidConfig, c.Speed)
	}
	if !isFinite(c.AutoStartDelay) || c.AutoStartDelay < 0 {
		return fmt.Errorf("%w: disperse.auto_start_delay %v must be >= 0", ErrInvalidConfig, c.AutoStartDelay)
	}
	return nil
}

var defaultDisperseOffsets = []Vec3{
	{5.0, 4.2, 0.5}, {-4.8, 5.1, 4.0}, {4.3, -5.5, 5.2}, {-5.6, -4.1, 4.8},
	{5.7, 9.4, -5.0}, {-4.5, 4.6, -5.2}, {4.9, -5.8, -4.6}, {-5.3, -5.0, -5.5},
	{0.8, 6.0, 1.2}, {-1.2, -6.1, -1.0}, {6.0, 0.5, -1.1}, {-6.2, -0.6, 1.5},
	{3.0, 5.8, 5.9}, {-3.5, 6.0, -2.5}, {5.8, -1.3, 4.6}, {-0.7, -5.5, 5.2},
}

// Disperser drives the scatter effect. Only mesh-local position and
// rotation are written, so it composes with the scroll timeline's scale.
type Disperser struct {
	cfg     DisperseConfig
	meshes  []*Node
	base    []Vec3
	offsets []Vec3

	tween   *gween.Tween
	elapsed float64
	started bool
	eased   float64
}

// NewDisperser captures the current positions of meshes as their bases.
func NewDisperser(cfg DisperseConfig, meshes []*Node) *Disperser {
	d := &Disperser{
		cfg:     cfg,
		meshes:  meshes,
		base:    make([]Vec3, len(meshes)),
		offsets: cfg.Offsets,
	}
	if len(d.offsets) == 0 {
		d.offsets = defaultDisperseOffsets
	}
	for i, m := range meshes {
		d.base[i] = m.Position
	}
	return d
}

// Start begins the scatter from the current progress.
func (d *Disperser) Start() {
	if d.started {
		return
	}
	d.started = true
	speed := d.cfg.Speed
	if speed <= 0 {
		speed = 0.8
	}
	d.tween = gween.New(0, 1, float32(1/speed), ease.OutCubic)
}

// Started reports whether the scatter has begun.
func (d *Disperser) Started() bool {
	return d.started
}

// Progress returns the eased progress in [0, 1].
func (d *Disperser) Progress() float64 {
	return d.eased
}

// Reset returns every mesh to its base pose and rearms the auto start.
func (d *Disperser) Reset() {
	d.started = false
	d.tween = nil
	d.elapsed = 0
	d.eased = 0
	d.apply()
}

// Update advances the effect by dt seconds.
func (d *Disperser) Update(dt float64) {
	if !d.started {
		if d.cfg.AutoStartDelay <= 0 {
			return
		}
		d.elapsed += dt
		if d.elapsed < d.cfg.AutoStartDelay {
			return
		}
		d.Start()
	}
	if d.eased >= 1 {
		return
	}
	v, done := d.tween.Update(float32(dt))
	d.eased = float64(v)
	if done {
		d.eased = 1
	}
	d.apply()
}

func (d *Disperser) apply() {
	for i, m := range d.meshes {
		if m.IsDisposed() {
			continue
		}
		off := d.offsets[i%len(d.offsets)]
		m.Position = d.base[i].Lerp(d.base[i].Add(off), d.eased)
		if d.cfg.Spin {
			sign := 1.0
			if i%2 == 1 {
				sign = -1
			}
			r := d.eased * 2 * math.Pi * sign
			m.Rotation = Vec3{r * 0.3, r * 0.5, r * 0.2}
		}
		m.MarkDirty()
	}
}
