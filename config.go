package scrollstage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("scrollstage: invalid config")

// Config holds the animation constants and policies. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// MouseSmoothing is the per-frame blend factor of the mouse filter.
	MouseSmoothing float64 `json:"mouse_smoothing"`
	// HoverSmoothing is the per-frame blend factor of the hover filter.
	HoverSmoothing float64 `json:"hover_smoothing"`
	// HoverScale is the multiplier a hovered mesh approaches.
	HoverScale float64 `json:"hover_scale"`
	// TiltInfluence scales the smoothed mouse into group rotation.
	TiltInfluence float64 `json:"tilt_influence"`
	// StaggerSpread is the grow-phase delay fraction of the last mesh.
	StaggerSpread float64 `json:"stagger_spread"`

	// GrowEase names a gween easing applied to the grow phase ("" = linear).
	GrowEase string `json:"grow_ease"`
	// ScaleBeyond is "plateau" or "freeze".
	ScaleBeyond string `json:"scale_beyond"`
	// FinalSweep is "override" or "hold".
	FinalSweep string `json:"final_sweep"`

	// CameraFollow enables smoothed camera look-at toward the group.
	CameraFollow bool `json:"camera_follow"`
	// CameraFollowLerp is the per-frame look-at blend factor.
	CameraFollowLerp float64 `json:"camera_follow_lerp"`

	Disperse DisperseConfig `json:"disperse"`
}

// DefaultConfig returns the stock animation settings.
func DefaultConfig() Config {
	return Config{
		MouseSmoothing:   DefaultMouseSmoothing,
		HoverSmoothing:   DefaultHoverSmoothing,
		HoverScale:       DefaultHoverScale,
		TiltInfluence:    DefaultTiltInfluence,
		StaggerSpread:    DefaultStaggerSpread,
		CameraFollowLerp: 0.03,
		Disperse:         DefaultDisperseConfig(),
	}
}

// LoadConfig reads a JSON config file. Fields not set in the file keep
// their DefaultConfig values. The result is validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes JSON over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate range-checks every field.
func (c Config) Validate() error {
	if !isFinite(c.MouseSmoothing) || c.MouseSmoothing <= 0 || c.MouseSmoothing > 1 {
		return fmt.Errorf("%w: mouse_smoothing %v not in (0, 1]", ErrInvalidConfig, c.MouseSmoothing)
	}
	if !isFinite(c.HoverSmoothing) || c.HoverSmoothing <= 0 || c.HoverSmoothing > 1 {
		return fmt.Errorf("%w: hover_smoothing %v not in (0, 1]", ErrInvalidConfig, c.HoverSmoothing)
	}
	if !isFinite(c.HoverScale) || c.HoverScale <= 0 {
		return fmt.Errorf("%w: hover_scale %v must be positive", ErrInvalidConfig, c.HoverScale)
	}
	if !isFinite(c.TiltInfluence) {
		return fmt.Errorf("%w: tilt_influence %v", ErrInvalidConfig, c.TiltInfluence)
	}
	if !isFinite(c.StaggerSpread) || c.StaggerSpread < 0 || c.StaggerSpread >= 1 {
		return fmt.Errorf("%w: stagger_spread %v not in [0, 1)", ErrInvalidConfig, c.StaggerSpread)
	}
	if _, ok := EaseByName(c.GrowEase); !ok {
		return fmt.Errorf("%w: unknown grow_ease %q", ErrInvalidConfig, c.GrowEase)
	}
	if _, err := ParseScaleBeyond(c.ScaleBeyond); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := ParseFinalSweep(c.FinalSweep); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.CameraFollow && (c.CameraFollowLerp <= 0 || c.CameraFollowLerp > 1) {
		return fmt.Errorf("%w: camera_follow_lerp %v not in (0, 1]", ErrInvalidConfig, c.CameraFollowLerp)
	}
	if err := c.Disperse.validate(); err != nil {
		return err
	}
	return nil
}

// Timeline builds the phase evaluator described by the config. Call
// Validate first; unknown names fall back to the defaults.
func (c Config) Timeline() Timeline {
	tl := DefaultTimeline()
	tl.StaggerSpread = c.StaggerSpread
	tl.GrowEase, _ = EaseByName(c.GrowEase)
	tl.ScaleBeyond, _ = ParseScaleBeyond(c.ScaleBeyond)
	tl.FinalSweep, _ = ParseFinalSweep(c.FinalSweep)
	return tl
}
