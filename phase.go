package scrollstage

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Scroll thresholds and keyframe values of the timeline.
const (
	scaleGrowStart = 0.1
	scaleGrowEnd   = 0.35
	scaleHoldEnd   = 0.5

	motionTravelStart = 0.35
	motionTravelEnd   = 0.65
	motionSweepLength = 0.2

	// ScaleCollapsed is the mesh scale before the grow phase.
	ScaleCollapsed = 0.01
	// ScaleFull is the mesh scale at the end of the grow phase.
	ScaleFull = 1.15

	travelX    = 2.6
	travelY    = -1.0
	travelRotX = math.Pi
	travelRotY = 0.7 * math.Pi

	sweepDX   = -2.8
	sweepDY   = 0.9
	sweepRotY = 0.45 * math.Pi

	// DefaultTiltInfluence scales the smoothed mouse into group rotation.
	DefaultTiltInfluence = 0.15
)

// ScalePhase names the branch of the scale timeline active at a progress.
type ScalePhase uint8

const (
	ScaleHidden ScalePhase = iota // p <= 0.1: collapsed
	ScaleGrow                     // 0.1 < p < 0.35: staggered growth
	ScaleHold                     // 0.35 <= p < 0.5: full size
	ScaleBeyond                   // p >= 0.5: governed by ScaleBeyondPolicy
)

func (p ScalePhase) String() string {
	switch p {
	case ScaleHidden:
		return "hidden"
	case ScaleGrow:
		return "grow"
	case ScaleHold:
		return "hold"
	case ScaleBeyond:
		return "beyond"
	default:
		return "unknown"
	}
}

// MotionPhase names the rule of the group motion timeline that won at a
// progress.
type MotionPhase uint8

const (
	MotionRest   MotionPhase = iota // p <= 0.35: centered, tilt only
	MotionTravel                    // 0.35 < p < 0.65: move and turn
	MotionHold                      // p >= 0.65 plateau (visible only with SweepHold)
	MotionSweep                     // p >= 0.65: final sweep
)

func (p MotionPhase) String() string {
	switch p {
	case MotionRest:
		return "rest"
	case MotionTravel:
		return "travel"
	case MotionHold:
		return "hold"
	case MotionSweep:
		return "sweep"
	default:
		return "unknown"
	}
}

// ScaleBeyondPolicy decides what the scale timeline does once p >= 0.5.
type ScaleBeyondPolicy uint8

const (
	// ScalePlateau keeps writing the full-size scale times hover.
	ScalePlateau ScaleBeyondPolicy = iota
	// ScaleFreeze stops writing scale, leaving the last written value.
	ScaleFreeze
)

// ParseScaleBeyond parses "plateau" or "freeze".
func ParseScaleBeyond(s string) (ScaleBeyondPolicy, error) {
	switch s {
	case "", "plateau":
		return ScalePlateau, nil
	case "freeze":
		return ScaleFreeze, nil
	}
	return 0, fmt.Errorf("unknown scale_beyond %q (want plateau or freeze)", s)
}

// FinalSweepPolicy decides which p >= 0.65 rule is visible.
type FinalSweepPolicy uint8

const (
	// SweepOverride lets the final sweep supersede the plateau.
	SweepOverride FinalSweepPolicy = iota
	// SweepHold disables the sweep so the group holds at the plateau.
	SweepHold
)

// ParseFinalSweep parses "override" or "hold".
func ParseFinalSweep(s string) (FinalSweepPolicy, error) {
	switch s {
	case "", "override":
		return SweepOverride, nil
	case "hold":
		return SweepHold, nil
	}
	return 0, fmt.Errorf("unknown final_sweep %q (want override or hold)", s)
}

// Timeline evaluates the scroll-progress phase functions.
type Timeline struct {
	StaggerSpread float64
	// GrowEase remaps the grow phase's local t. Nil is linear.
	GrowEase    ease.TweenFunc
	ScaleBeyond ScaleBeyondPolicy
	FinalSweep  FinalSweepPolicy
}

// DefaultTimeline returns the timeline with the stock stagger and policies.
func DefaultTimeline() Timeline {
	return Timeline{StaggerSpread: DefaultStaggerSpread}
}

// ScalePhaseAt returns the scale branch active at p and its local t. Local
// t is only meaningful for ScaleGrow.
func ScalePhaseAt(p float64) (ScalePhase, float64) {
	switch {
	case p > scaleGrowStart && p < scaleGrowEnd:
		return ScaleGrow, (p - scaleGrowStart) / (scaleGrowEnd - scaleGrowStart)
	case p <= scaleGrowStart:
		return ScaleHidden, 0
	case p >= scaleGrowEnd && p < scaleHoldEnd:
		return ScaleHold, 1
	default:
		return ScaleBeyond, 1
	}
}

// BaseScale returns the pre-hover scale for the mesh at index among n.
// write is false when the policy leaves the mesh's previous scale alone.
func (tl Timeline) BaseScale(p float64, index, n int) (scale float64, phase ScalePhase, write bool) {
	phase, t := ScalePhaseAt(p)
	switch phase {
	case ScaleHidden:
		return ScaleCollapsed, phase, true
	case ScaleGrow:
		st := StaggeredProgress(applyEase(tl.GrowEase, t), index, n, tl.StaggerSpread)
		return ScaleCollapsed + st*(ScaleFull-ScaleCollapsed), phase, true
	case ScaleHold:
		return ScaleFull, phase, true
	}
	if tl.ScaleBeyond == ScaleFreeze {
		return 0, phase, false
	}
	return ScaleFull, phase, true
}

// Motion is the group pose produced by the motion timeline. Only the X and
// Y components of Position and Rotation are driven.
type Motion struct {
	Phase    MotionPhase
	T        float64
	Position Vec2
	Rotation Vec2
}

type motionRule struct {
	phase MotionPhase
	match func(p float64) bool
	pose  func(p float64) Motion
}

// motionRules is evaluated top to bottom; the last matching rule wins.
var motionRules = []motionRule{
	{
		phase: MotionRest,
		match: func(p float64) bool { return p <= motionTravelStart },
		pose:  func(float64) Motion { return Motion{} },
	},
	{
		phase: MotionTravel,
		match: func(p float64) bool { return p > motionTravelStart && p < motionTravelEnd },
		pose: func(p float64) Motion {
			t := (p - motionTravelStart) / (motionTravelEnd - motionTravelStart)
			return Motion{
				T:        t,
				Position: Vec2{t * travelX, t * travelY},
				Rotation: Vec2{t * travelRotX, t * travelRotY},
			}
		},
	},
	{
		phase: MotionHold,
		match: func(p float64) bool { return p >= motionTravelEnd },
		pose: func(float64) Motion {
			return Motion{
				T:        1,
				Position: Vec2{travelX, travelY},
				Rotation: Vec2{travelRotX, travelRotY},
			}
		},
	},
	{
		phase: MotionSweep,
		match: func(p float64) bool { return p >= motionTravelEnd },
		pose: func(p float64) Motion {
			t := (p - motionTravelEnd) / motionSweepLength
			return Motion{
				T:        t,
				Position: Vec2{travelX + t*sweepDX, travelY + t*sweepDY},
				Rotation: Vec2{travelRotX, travelRotY + t*sweepRotY},
			}
		},
	},
}

// MotionAt evaluates the group pose at p and adds the tilt to the rotation.
// tilt.X is added to rotation X and tilt.Y to rotation Y.
func (tl Timeline) MotionAt(p float64, tilt Vec2) Motion {
	m := Motion{Phase: MotionRest}
	for _, r := range motionRules {
		if r.phase == MotionSweep && tl.FinalSweep == SweepHold {
			continue
		}
		if r.match(p) {
			m = r.pose(p)
			m.Phase = r.phase
		}
	}
	m.Rotation.X += tilt.X
	m.Rotation.Y += tilt.Y
	return m
}

// Tilt converts the smoothed mouse into a rotation offset: mouse Y tilts
// about the X axis and mouse X about the Y axis.
func Tilt(mouse Vec2, influence float64) Vec2 {
	return Vec2{X: mouse.Y * influence, Y: mouse.X * influence}
}
