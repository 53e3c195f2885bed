package scrollstage

import "fmt"

// StageLayout places the loaded meshes inside the animated group.
type StageLayout struct {
	// ModelOffset is the model container's position inside the group.
	ModelOffset Vec3
	// ModelScale is the model container's uniform scale.
	ModelScale float64
	Style      MeshStyle
}

// DefaultStageLayout returns the stock placement and cyan wireframe look.
func DefaultStageLayout() StageLayout {
	return StageLayout{
		ModelOffset: Vec3{-1, -1, -0.1},
		ModelScale:  0.4,
		Style: MeshStyle{
			Color:        ColorHex("#11b9e8"),
			EdgeColor:    ColorHex("#7DF9FF"),
			EdgeWidth:    1,
			InitialScale: ScaleCollapsed,
		},
	}
}

// Stage is the node hierarchy driven by an Animator: a group that moves and
// tilts, a model container that fixes placement, and the meshes.
type Stage struct {
	Group    *Node
	Model    *Node
	Meshes   []*Node
	Animator *Animator
}

// NewStage builds the hierarchy for set and an Animator bound to it.
func NewStage(set MeshSet, cfg Config, layout StageLayout) (*Stage, error) {
	group := NewGroup("stage")
	model := NewGroup("model")
	model.Position = layout.ModelOffset
	if layout.ModelScale > 0 {
		model.Scale = Uniform(layout.ModelScale)
	}
	group.AddChild(model)

	meshes, err := set.Build(model, layout.Style)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}
	anim, err := NewAnimator(cfg, group, meshes)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}
	return &Stage{Group: group, Model: model, Meshes: meshes, Animator: anim}, nil
}

// Attach adds the group under the scene root and attaches the animator.
func (st *Stage) Attach(s *Scene, src ProgressSource) {
	if st.Group.Parent != s.root {
		s.root.AddChild(st.Group)
	}
	st.Animator.Attach(s, src)
}

// Dispose detaches the animator and disposes the whole hierarchy.
func (st *Stage) Dispose() {
	st.Animator.Detach()
	st.Group.Dispose()
}

// VoxelMeshSet builds one cube mesh per '#' cell of pattern. Rows run top
// to bottom and the grid is laid out in the XY plane starting at the
// origin with cell pitch size. All cubes share one Geometry.
func VoxelMeshSet(pattern []string, size float64) MeshSet {
	if size <= 0 {
		size = 1
	}
	geom := NewBoxGeometry(size*0.9, size*0.9, size*0.9)
	var set MeshSet
	rows := len(pattern)
	for r, line := range pattern {
		for c, ch := range line {
			if ch != '#' {
				continue
			}
			set = append(set, MeshEntry{
				Name:     fmt.Sprintf("voxel_%d_%d", r, c),
				Geometry: geom,
				Position: Vec3{X: float64(c) * size, Y: float64(rows-1-r) * size},
			})
		}
	}
	return set
}
