package scrollstage

import (
	"math"

	"github.com/tanema/gween/ease"
)

const (
	defaultFOV  = 60.0
	defaultNear = 0.1
)

// Camera is a perspective camera looking from Position toward Target.
type Camera struct {
	// Position is the eye position in world space.
	Position Vec3
	// Target is the world-space point the camera looks at.
	Target Vec3
	// Up is the world up direction used to orient the view.
	Up Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near is the near clipping distance. Faces with any vertex closer than
	// Near are skipped.
	Near float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	followTarget *Node
	followLerp   float64

	move *TweenGroup

	view  Mat4
	dirty bool
}

// NewCamera creates a camera at (0, 0, 5) looking at the origin with a 60°
// vertical field of view.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Position: Vec3{0, 0, 5},
		Up:       Vec3{0, 1, 0},
		FOV:      defaultFOV,
		Near:     defaultNear,
		Viewport: viewport,
		dirty:    true,
	}
}

// Follow makes the camera's look-at target track a node's world position.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(node *Node, lerp float64) {
	c.followTarget = node
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// MoveTo animates the camera position to pos over duration seconds.
func (c *Camera) MoveTo(pos Vec3, duration float32, easeFn ease.TweenFunc) {
	c.move = TweenVec3(&c.Position, pos, duration, easeFn)
}

// Moving reports whether a MoveTo animation is still running.
func (c *Camera) Moving() bool {
	return c.move != nil && !c.move.Done
}

// update advances follow and move animations. Called from Scene.Update().
func (c *Camera) update(dt float32) {
	prevPos, prevTarget := c.Position, c.Target

	if c.followTarget != nil && !c.followTarget.IsDisposed() {
		c.Target = c.Target.Lerp(c.followTarget.WorldPosition(), c.followLerp)
	}

	if c.move != nil {
		c.move.Update(dt)
		if c.move.Done {
			c.move = nil
		}
	}

	if c.Position != prevPos || c.Target != prevTarget {
		c.dirty = true
	}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// viewMatrix recomputes the cached view matrix if dirty.
func (c *Camera) viewMatrix() Mat4 {
	if !c.dirty {
		return c.view
	}
	c.dirty = false
	up := c.Up
	if up == (Vec3{}) {
		up = Vec3{0, 1, 0}
	}
	c.view = lookAt(c.Position, c.Target, up)
	return c.view
}

// focal returns the projection scale factors for x and y.
func (c *Camera) focal() (fx, fy float64) {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = defaultFOV
	}
	fy = 1 / math.Tan(fov*math.Pi/360)
	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	return fy / aspect, fy
}

// projectView maps a view-space point to screen space. ok is false when the
// point lies closer than the near plane.
func (c *Camera) projectView(v Vec3, fx, fy float64) (screen Vec2, depth float64, ok bool) {
	depth = -v.Z
	near := c.Near
	if near <= 0 {
		near = defaultNear
	}
	if depth < near {
		return Vec2{}, depth, false
	}
	ndcX := fx * v.X / depth
	ndcY := fy * v.Y / depth
	vp := c.Viewport
	return Vec2{
		X: vp.X + (ndcX+1)/2*vp.Width,
		Y: vp.Y + (1-ndcY)/2*vp.Height,
	}, depth, true
}

// Project converts a world-space point to screen coordinates and its
// distance along the view direction.
func (c *Camera) Project(world Vec3) (screen Vec2, depth float64, ok bool) {
	fx, fy := c.focal()
	return c.projectView(c.viewMatrix().MulPoint(world), fx, fy)
}

// NormalizePointer maps viewport pixel coordinates to [-1, 1] on both axes
// with Y pointing up.
func (c *Camera) NormalizePointer(sx, sy float64) Vec2 {
	vp := c.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: (sx-vp.X)/vp.Width*2 - 1,
		Y: -(sy-vp.Y)/vp.Height*2 + 1,
	}
}
