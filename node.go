package scrollstage

// PointerContext carries pointer event data.
type PointerContext struct {
	Node     *Node
	Name     string
	EntityID uint32
	UserData any
	// ScreenX and ScreenY are the cursor position in viewport pixels.
	ScreenX, ScreenY float64
	// Normalized is the cursor position mapped to [-1, 1] on both axes,
	// with Y pointing up.
	Normalized Vec2
}

// --- ID counter ---

// nodeIDCounter is a plain counter; scenes are single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. Groups carry only a transform; meshes add
// a Geometry that the renderer projects and fills. A single flat struct is
// used for both so traversal stays free of interface dispatch.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation holds Euler angles in radians applied in
	// X, Y, Z order.
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	worldMatrix    Mat4
	transformDirty bool

	Visible      bool
	Interactable bool

	// Mesh fields (NodeTypeMesh)
	Geometry  *Geometry
	Color     Color
	EdgeColor Color
	EdgeWidth float64

	// Metadata
	UserData any
	EntityID uint32

	// Per-node callbacks (nil by default)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnPointerMove  func(PointerContext)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = Vec3{1, 1, 1}
	n.Color = ColorWhite
	n.Visible = true
	n.worldMatrix = identityMatrix
	n.transformDirty = true
}

// NewGroup creates a transform-only node.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewMesh creates an interactable mesh node that renders geom.
func NewMesh(name string, geom *Geometry) *Node {
	n := &Node{
		Name:         name,
		Type:         NodeTypeMesh,
		Geometry:     geom,
		Interactable: true,
		EdgeWidth:    1,
	}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scrollstage: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("scrollstage: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scrollstage: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first descendant (depth-first) with the given name,
// or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Geometry = nil
	n.UserData = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnPointerMove = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
