package scrollstage

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyMeshName is returned when a mesh entry has no name.
var ErrEmptyMeshName = errors.New("scrollstage: empty mesh name")

// ErrDuplicateMesh is returned when two mesh entries share a name.
var ErrDuplicateMesh = errors.New("scrollstage: duplicate mesh name")

// Geometry is an immutable set of convex polygonal faces over shared
// vertices. Faces list vertex indices counter-clockwise when seen from
// outside the solid.
type Geometry struct {
	Vertices []Vec3
	Faces    [][]int

	bounds      Box3
	boundsValid bool
}

// Box3 is an axis-aligned 3D bounding box.
type Box3 struct {
	Min, Max Vec3
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// NewGeometry wraps vertices and faces. Faces with fewer than three indices
// or with out-of-range indices are rejected.
func NewGeometry(vertices []Vec3, faces [][]int) (*Geometry, error) {
	for i, f := range faces {
		if len(f) < 3 {
			return nil, fmt.Errorf("geometry: face %d has %d vertices", i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("geometry: face %d index %d out of range [0,%d)", i, idx, len(vertices))
			}
		}
	}
	return &Geometry{Vertices: vertices, Faces: faces}, nil
}

// NewBoxGeometry builds an axis-aligned box centered on the origin.
func NewBoxGeometry(w, h, d float64) *Geometry {
	x, y, z := w/2, h/2, d/2
	verts := []Vec3{
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}, // front (+Z)
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}, // back (-Z)
	}
	faces := [][]int{
		{0, 1, 2, 3}, // +Z
		{5, 4, 7, 6}, // -Z
		{1, 5, 6, 2}, // +X
		{4, 0, 3, 7}, // -X
		{3, 2, 6, 7}, // +Y
		{4, 5, 1, 0}, // -Y
	}
	return &Geometry{Vertices: verts, Faces: faces}
}

// Bounds returns the local-space AABB, computed once and cached.
func (g *Geometry) Bounds() Box3 {
	if g.boundsValid {
		return g.bounds
	}
	g.bounds = computeBounds(g.Vertices)
	g.boundsValid = true
	return g.bounds
}

// computeBounds scans the vertices and returns their axis-aligned bounding box.
func computeBounds(verts []Vec3) Box3 {
	if len(verts) == 0 {
		return Box3{}
	}
	b := Box3{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for _, v := range verts {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Min.Z = math.Min(b.Min.Z, v.Z)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
		b.Max.Z = math.Max(b.Max.Z, v.Z)
	}
	return b
}

// --- Mesh sets ---

// MeshEntry is one named mesh produced by an asset loader: shared geometry
// and the base local position the mesh sits at inside its container.
type MeshEntry struct {
	Name     string
	Geometry *Geometry
	Position Vec3
}

// MeshSet is the ordered, load-once collection of meshes handed to an
// Animator. Order determines stagger index.
type MeshSet []MeshEntry

// Validate checks that every entry has a unique non-empty name.
func (ms MeshSet) Validate() error {
	seen := make(map[string]struct{}, len(ms))
	for i, e := range ms {
		if e.Name == "" {
			return fmt.Errorf("mesh %d: %w", i, ErrEmptyMeshName)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("mesh %q: %w", e.Name, ErrDuplicateMesh)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// Names returns the entry names in order.
func (ms MeshSet) Names() []string {
	names := make([]string, len(ms))
	for i, e := range ms {
		names[i] = e.Name
	}
	return names
}

// Build creates one mesh node per entry under parent, positioned at the
// entry's base position. The returned slice preserves entry order.
func (ms MeshSet) Build(parent *Node, style MeshStyle) ([]*Node, error) {
	if err := ms.Validate(); err != nil {
		return nil, err
	}
	nodes := make([]*Node, len(ms))
	for i, e := range ms {
		n := NewMesh(e.Name, e.Geometry)
		n.Position = e.Position
		n.Color = style.Color
		n.EdgeColor = style.EdgeColor
		if style.EdgeWidth > 0 {
			n.EdgeWidth = style.EdgeWidth
		}
		if style.InitialScale > 0 {
			n.Scale = Uniform(style.InitialScale)
		}
		parent.AddChild(n)
		nodes[i] = n
	}
	return nodes, nil
}

// MeshStyle holds the shared surface look applied by MeshSet.Build.
type MeshStyle struct {
	Color        Color
	EdgeColor    Color
	EdgeWidth    float64
	InitialScale float64
}
