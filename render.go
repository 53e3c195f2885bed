package scrollstage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// faceCommand is a single projected face emitted during scene traversal.
// Its screen-space outline lives in Scene.points[start : start+count].
type faceCommand struct {
	node      *Node
	start     int
	count     int
	depth     float64
	shade     float64
	treeOrder int // assigned during traversal for stable sort
}

// maxBatchVerts keeps index values inside uint16 range.
const maxBatchVerts = 65535 - 16

var whitePixel *ebiten.Image

// ensureWhitePixel lazily creates a 1x1 white image used as the source
// texture for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// collectFaces walks the tree depth-first and projects every front-facing
// face of every visible mesh into s.faces. World transforms must be current.
func (s *Scene) collectFaces() {
	s.faces = s.faces[:0]
	s.points = s.points[:0]
	view := s.camera.viewMatrix()
	fx, fy := s.camera.focal()
	light := s.LightDir.Normalize()
	order := 0
	s.collectNode(s.root, view, fx, fy, light, &order)
}

func (s *Scene) collectNode(n *Node, view Mat4, fx, fy float64, light Vec3, order *int) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeMesh && n.Geometry != nil {
		s.projectMesh(n, view, fx, fy, light, order)
	}
	for _, c := range n.children {
		s.collectNode(c, view, fx, fy, light, order)
	}
}

func (s *Scene) projectMesh(n *Node, view Mat4, fx, fy float64, light Vec3, order *int) {
	g := n.Geometry
	mv := Mat4Mul(view, n.worldMatrix)

	if cap(s.viewBuf) < len(g.Vertices) {
		s.viewBuf = make([]Vec3, len(g.Vertices))
	}
	vs := s.viewBuf[:len(g.Vertices)]
	for i, v := range g.Vertices {
		vs[i] = mv.MulPoint(v)
	}

	ambient := clamp01(s.Ambient)
faces:
	for _, face := range g.Faces {
		v0, v1, v2 := vs[face[0]], vs[face[1]], vs[face[2]]
		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		// The eye sits at the view-space origin.
		if normal.Dot(v0) >= 0 {
			continue
		}

		start := len(s.points)
		depth := 0.0
		for _, idx := range face {
			p, d, ok := s.camera.projectView(vs[idx], fx, fy)
			if !ok {
				s.points = s.points[:start]
				continue faces
			}
			s.points = append(s.points, p)
			depth += d
		}
		*order++
		s.faces = append(s.faces, faceCommand{
			node:      n,
			start:     start,
			count:     len(face),
			depth:     depth / float64(len(face)),
			shade:     ambient + (1-ambient)*math.Max(0, normal.Dot(light)),
			treeOrder: *order,
		})
	}
}

// --- Merge sort ---

// faceLessOrEqual returns true if a should be drawn before or at the same
// position as b: farther faces first, ties in tree order.
func faceLessOrEqual(a, b *faceCommand) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.treeOrder <= b.treeOrder
}

// sortFaces sorts s.faces back to front using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) sortFaces() {
	n := len(s.faces)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]faceCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.faces
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.faces, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []faceCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if faceLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// --- Submission ---

// submitFaces fills every face and strokes its outline into a single
// triangle batch, flushing when the index range would overflow. Edges are
// emitted right after their face so nearer faces cover farther outlines.
// Returns the number of DrawTriangles calls.
func (s *Scene) submitFaces(screen *ebiten.Image) int {
	s.verts = s.verts[:0]
	s.indices = s.indices[:0]
	calls := 0
	for i := range s.faces {
		f := &s.faces[i]
		pts := s.points[f.start : f.start+f.count]
		need := len(pts) + 4*len(pts)
		if len(s.verts)+need > maxBatchVerts {
			calls += s.flushBatch(screen)
		}
		n := f.node
		fill := n.Color
		fill.R *= f.shade
		fill.G *= f.shade
		fill.B *= f.shade
		s.appendPolygon(pts, fill)
		if n.EdgeWidth > 0 && n.EdgeColor.A > 0 {
			for j := range pts {
				p, q := pts[j], pts[(j+1)%len(pts)]
				s.appendLine(p, q, n.EdgeWidth, n.EdgeColor)
			}
		}
	}
	calls += s.flushBatch(screen)
	return calls
}

func (s *Scene) flushBatch(screen *ebiten.Image) int {
	if len(s.indices) == 0 {
		return 0
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	screen.DrawTriangles(s.verts, s.indices, ensureWhitePixel(), &op)
	s.verts = s.verts[:0]
	s.indices = s.indices[:0]
	return 1
}

func vertexAt(p Vec2, c Color) ebiten.Vertex {
	a := float32(c.A)
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	}
}

// appendPolygon fans a convex polygon into triangles.
func (s *Scene) appendPolygon(pts []Vec2, c Color) {
	base := uint16(len(s.verts))
	for _, p := range pts {
		s.verts = append(s.verts, vertexAt(p, c))
	}
	for i := 1; i+1 < len(pts); i++ {
		s.indices = append(s.indices, base, base+uint16(i), base+uint16(i+1))
	}
}

// appendLine emits a segment as a quad of the given pixel width.
func (s *Scene) appendLine(p, q Vec2, width float64, c Color) {
	dx, dy := q.X-p.X, q.Y-p.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	base := uint16(len(s.verts))
	s.verts = append(s.verts,
		vertexAt(Vec2{p.X + nx, p.Y + ny}, c),
		vertexAt(Vec2{q.X + nx, q.Y + ny}, c),
		vertexAt(Vec2{q.X - nx, q.Y - ny}, c),
		vertexAt(Vec2{p.X - nx, p.Y - ny}, c),
	)
	s.indices = append(s.indices, base, base+1, base+2, base, base+2, base+3)
}
