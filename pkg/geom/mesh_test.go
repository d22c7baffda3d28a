package geom

import (
	"math"
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

// unitCube returns a closed unit cube with CCW outward winding,
// corners at (0,0,0) and (1,1,1). Volume 1, surface area 6.
func unitCube() *Mesh {
	return &Mesh{
		Vertices: []vec3d.T{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		},
		Faces: [][3]int32{
			{0, 2, 1}, {0, 3, 2},
			{4, 5, 6}, {4, 6, 7},
			{0, 1, 5}, {0, 5, 4},
			{2, 3, 7}, {2, 7, 6},
			{0, 4, 7}, {0, 7, 3},
			{1, 2, 6}, {1, 6, 5},
		},
	}
}

func TestCounts(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		wantVerts int
		wantTris  int
	}{
		{"empty", &Mesh{}, 0, 0},
		{"cube", unitCube(), 8, 12},
		{"one triangle", &Mesh{
			Vertices: []vec3d.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Faces:    [][3]int32{{0, 1, 2}},
		}, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.wantVerts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.wantVerts)
			}
			if got := tt.mesh.TriangleCount(); got != tt.wantTris {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.wantTris)
			}
		})
	}
}

func TestSignedVolume(t *testing.T) {
	cube := unitCube()
	if got := cube.SignedVolume(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("SignedVolume() = %g, want 1.0", got)
	}

	// Inverted winding flips the sign.
	inverted := cube.Clone()
	for i, f := range inverted.Faces {
		inverted.Faces[i] = [3]int32{f[0], f[2], f[1]}
	}
	if got := inverted.SignedVolume(); math.Abs(got+1.0) > 1e-12 {
		t.Errorf("inverted SignedVolume() = %g, want -1.0", got)
	}
}

func TestSurfaceArea(t *testing.T) {
	if got := unitCube().SurfaceArea(); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("SurfaceArea() = %g, want 6.0", got)
	}
}

func TestBounds(t *testing.T) {
	bb := unitCube().Bounds()
	if bb.Min != (vec3d.T{0, 0, 0}) || bb.Max != (vec3d.T{1, 1, 1}) {
		t.Errorf("Bounds() = %v..%v, want (0,0,0)..(1,1,1)", bb.Min, bb.Max)
	}

	empty := &Mesh{}
	bb = empty.Bounds()
	if bb.Min != (vec3d.T{}) || bb.Max != (vec3d.T{}) {
		t.Errorf("empty Bounds() = %v..%v, want zero box", bb.Min, bb.Max)
	}
}

func TestCentroid(t *testing.T) {
	got := unitCube().Centroid()
	want := vec3d.T{0.5, 0.5, 0.5}
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("Centroid() = %v, want %v", got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := unitCube().Validate(); err != nil {
		t.Errorf("valid cube: %v", err)
	}

	bad := &Mesh{
		Vertices: []vec3d.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    [][3]int32{{0, 1, 3}},
	}
	if err := bad.Validate(); err == nil {
		t.Error("out-of-range index should fail validation")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := unitCube()
	cl := orig.Clone()
	cl.Vertices[0] = vec3d.T{9, 9, 9}
	cl.Faces[0] = [3]int32{1, 1, 1}
	if orig.Vertices[0] == (vec3d.T{9, 9, 9}) {
		t.Error("clone shares vertex storage with original")
	}
	if orig.Faces[0] == ([3]int32{1, 1, 1}) {
		t.Error("clone shares face storage with original")
	}
}
