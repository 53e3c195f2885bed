package scrollstage

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates the three components of a Vec3 simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenRotation,
// TweenScale, TweenVec3) and call Update(dt) each frame. If the target node
// is disposed, the group stops immediately.
//
// There is no global animation manager; callers run Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	fields [3]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty. If the target node has been disposed,
// Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := range g.tweens {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func newVec3Group(field *Vec3, to Vec3, duration float32, fn ease.TweenFunc, target *Node) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{target: target}
	g.tweens[0] = gween.New(float32(field.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(field.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(field.Z), float32(to.Z), duration, fn)
	g.fields[0] = &field.X
	g.fields[1] = &field.Y
	g.fields[2] = &field.Z
	return g
}

// TweenVec3 animates an arbitrary Vec3 (for example a camera position) to
// the given value. A nil easing function means linear.
func TweenVec3(field *Vec3, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Group(field, to, duration, fn, nil)
}

// TweenPosition animates node.Position to the target over the specified
// duration using the easing function.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Group(&node.Position, to, duration, fn, node)
}

// TweenRotation animates node.Rotation (Euler radians) to the target.
func TweenRotation(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Group(&node.Rotation, to, duration, fn, node)
}

// TweenScale animates node.Scale to the target.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Group(&node.Scale, to, duration, fn, node)
}

// easeFuncs maps config names to gween easing functions.
var easeFuncs = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"out-back":       ease.OutBack,
	"out-elastic":    ease.OutElastic,
	"in-out-expo":    ease.InOutExpo,
	"out-bounce":     ease.OutBounce,
	"in-out-quart":   ease.InOutQuart,
	"in-out-quint":   ease.InOutQuint,
	"in-out-circ":    ease.InOutCirc,
	"in-out-elastic": ease.InOutElastic,
}

// EaseByName returns the easing function registered under name. The empty
// string resolves to nil, which callers treat as exact linear.
func EaseByName(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return nil, true
	}
	fn, ok := easeFuncs[name]
	return fn, ok
}

// applyEase remaps a unit progress value through fn. A nil fn returns t
// unchanged so the default path stays in float64.
func applyEase(fn ease.TweenFunc, t float64) float64 {
	if fn == nil {
		return t
	}
	return float64(fn(float32(t), 0, 1, 1))
}
