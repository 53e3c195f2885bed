package scrollstage

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func testCamera() *Camera {
	return NewCamera(Rect{Width: 800, Height: 600})
}

func TestCameraDefaults(t *testing.T) {
	cam := testCamera()
	if cam.Position != (Vec3{0, 0, 5}) {
		t.Errorf("Position = %v, want (0,0,5)", cam.Position)
	}
	if cam.FOV != 60 {
		t.Errorf("FOV = %v, want 60", cam.FOV)
	}
	if cam.Moving() {
		t.Error("new camera should not be moving")
	}
}

func TestCameraProjectOriginToCenter(t *testing.T) {
	cam := testCamera()
	p, depth, ok := cam.Project(Vec3{})
	if !ok {
		t.Fatal("origin should project")
	}
	assertNear(t, "x", p.X, 400)
	assertNear(t, "y", p.Y, 300)
	assertNear(t, "depth", depth, 5)
}

func TestCameraProjectAxes(t *testing.T) {
	cam := testCamera()
	fy := 1 / math.Tan(math.Pi/6)
	fx := fy / (800.0 / 600.0)

	p, _, _ := cam.Project(Vec3{1, 1, 0})
	assertNear(t, "right", p.X, 400+fx/5*400)
	// World +Y is screen up.
	assertNear(t, "up", p.Y, 300-fy/5*300)
}

func TestCameraProjectBehind(t *testing.T) {
	cam := testCamera()
	if _, _, ok := cam.Project(Vec3{0, 0, 6}); ok {
		t.Error("point behind the camera should not project")
	}
	if _, _, ok := cam.Project(Vec3{0, 0, 4.95}); ok {
		t.Error("point inside the near plane should not project")
	}
}

func TestCameraNormalizePointer(t *testing.T) {
	cam := NewCamera(Rect{X: 100, Y: 50, Width: 800, Height: 600})
	tests := []struct {
		name   string
		sx, sy float64
		want   Vec2
	}{
		{"center", 500, 350, Vec2{0, 0}},
		{"top-left", 100, 50, Vec2{-1, 1}},
		{"bottom-right", 900, 650, Vec2{1, -1}},
		{"outside", 1300, 50, Vec2{2, 1}},
	}
	for _, tt := range tests {
		got := cam.NormalizePointer(tt.sx, tt.sy)
		assertNear(t, tt.name+".X", got.X, tt.want.X)
		assertNear(t, tt.name+".Y", got.Y, tt.want.Y)
	}
}

func TestCameraNormalizePointerEmptyViewport(t *testing.T) {
	cam := NewCamera(Rect{})
	if got := cam.NormalizePointer(10, 10); got != (Vec2{}) {
		t.Errorf("got %v, want zero", got)
	}
}

func TestCameraMoveTo(t *testing.T) {
	cam := testCamera()
	cam.MoveTo(Vec3{0, 0, 10}, 1, ease.Linear)
	if !cam.Moving() {
		t.Fatal("camera should be moving")
	}
	cam.update(0.5)
	assertNearEps(t, "mid z", cam.Position.Z, 7.5, 1e-5)
	cam.update(0.6)
	if cam.Moving() {
		t.Error("move should be finished")
	}
	assertNearEps(t, "final z", cam.Position.Z, 10, 1e-5)
}

func TestCameraFollow(t *testing.T) {
	n := NewGroup("target")
	n.SetPosition(2, 0, 0)
	updateWorldTransform(n, identityMatrix, false)

	cam := testCamera()
	cam.Follow(n, 0.5)
	cam.update(1.0 / 60)
	assertNear(t, "half way", cam.Target.X, 1)
	cam.update(1.0 / 60)
	assertNear(t, "three quarters", cam.Target.X, 1.5)

	cam.Unfollow()
	cam.update(1.0 / 60)
	assertNear(t, "unfollowed", cam.Target.X, 1.5)
}

func TestCameraViewMatrixCached(t *testing.T) {
	cam := testCamera()
	v1 := cam.viewMatrix()
	if cam.dirty {
		t.Fatal("view should be clean after viewMatrix")
	}
	cam.Position.Z = 8
	cam.MarkDirty()
	v2 := cam.viewMatrix()
	if v1 == v2 {
		t.Error("view matrix should change after MarkDirty")
	}
}
