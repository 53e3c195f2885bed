package scrollstage

// computeLocalTransform builds the node's local matrix.
//
// Composition order:
//
//	Scale -> Rotate(X, Y, Z) -> Translate(Position)
func computeLocalTransform(n *Node) Mat4 {
	return composeTRS(n.Position, n.Rotation, n.Scale)
}

// updateWorldTransform recomputes a node's worldMatrix.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parent Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldMatrix = Mat4Mul(parent, computeLocalTransform(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = Vec3{x, y, z}
	n.transformDirty = true
}

// SetRotation sets the node's Euler rotation (radians) and marks it dirty.
func (n *Node) SetRotation(x, y, z float64) {
	n.Rotation = Vec3{x, y, z}
	n.transformDirty = true
}

// SetScale sets the node's per-axis scale and marks it dirty.
func (n *Node) SetScale(x, y, z float64) {
	n.Scale = Vec3{x, y, z}
	n.transformDirty = true
}

// SetUniformScale sets all three scale axes to s and marks the node dirty.
func (n *Node) SetUniformScale(s float64) {
	n.Scale = Vec3{s, s, s}
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldMatrix returns the node's world matrix as of the last transform pass.
func (n *Node) WorldMatrix() Mat4 {
	return n.worldMatrix
}

// WorldPosition returns the node's origin in world space as of the last
// transform pass.
func (n *Node) WorldPosition() Vec3 {
	return n.worldMatrix.Translation()
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return n.worldMatrix.MulPoint(p)
}
