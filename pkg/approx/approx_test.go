package approx

import (
	"math"
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// tetra returns a unit tetrahedron with CCW outward winding.
func tetra() *geom.Mesh {
	return &geom.Mesh{
		Vertices: []vec3d.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Faces:    [][3]int32{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	}
}

func TestBoxesShape(t *testing.T) {
	parts := Boxes([]*geom.Mesh{tetra(), tetra()})
	if len(parts) != 2 {
		t.Fatalf("part count = %d, want 2", len(parts))
	}
	for i, p := range parts {
		if p.VertexCount() != 8 {
			t.Errorf("part %d: %d vertices, want 8", i, p.VertexCount())
		}
		if p.TriangleCount() != 12 {
			t.Errorf("part %d: %d triangles, want 12", i, p.TriangleCount())
		}
		if err := p.Validate(); err != nil {
			t.Errorf("part %d: %v", i, err)
		}
	}
}

func TestBoxesCornerEnumeration(t *testing.T) {
	parts := Boxes([]*geom.Mesh{tetra()})
	want := []vec3d.T{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for i, v := range parts[0].Vertices {
		if v != want[i] {
			t.Errorf("corner %d = %v, want %v", i, v, want[i])
		}
	}
}

// TestBoxesOutwardWinding checks that every triangle's normal points away
// from the box center.
func TestBoxesOutwardWinding(t *testing.T) {
	box := Boxes([]*geom.Mesh{tetra()})[0]
	center := box.Centroid()
	for fi, f := range box.Faces {
		v0 := box.Vertices[f[0]]
		e1 := vec3d.Sub(&box.Vertices[f[1]], &v0)
		e2 := vec3d.Sub(&box.Vertices[f[2]], &v0)
		n := vec3d.Cross(&e1, &e2)
		toFace := vec3d.Sub(&v0, &center)
		if vec3d.Dot(&n, &toFace) <= 0 {
			t.Errorf("triangle %d winds inward", fi)
		}
	}
}

func TestBoxesVolume(t *testing.T) {
	// The box of the unit tetrahedron is the unit cube.
	box := Boxes([]*geom.Mesh{tetra()})[0]
	if got := box.SignedVolume(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("box volume = %g, want 1.0", got)
	}
	if got := box.SurfaceArea(); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("box area = %g, want 6.0", got)
	}
}

func TestBoxesDegenerateFlat(t *testing.T) {
	// All vertices on the z=0 plane: the box is flat but still 8/12.
	flat := &geom.Mesh{
		Vertices: []vec3d.T{{0, 0, 0}, {2, 0, 0}, {0, 3, 0}},
		Faces:    [][3]int32{{0, 1, 2}},
	}
	box := Boxes([]*geom.Mesh{flat})[0]
	if box.VertexCount() != 8 || box.TriangleCount() != 12 {
		t.Fatalf("flat box = %d/%d, want 8/12", box.VertexCount(), box.TriangleCount())
	}
	bb := box.Bounds()
	if bb.Min[2] != 0 || bb.Max[2] != 0 {
		t.Errorf("flat box z extent = %g..%g, want 0..0", bb.Min[2], bb.Max[2])
	}
}

func TestBoxesSingleVertex(t *testing.T) {
	point := &geom.Mesh{Vertices: []vec3d.T{{1, 2, 3}}}
	box := Boxes([]*geom.Mesh{point})[0]
	if box.VertexCount() != 8 || box.TriangleCount() != 12 {
		t.Fatalf("point box = %d/%d, want 8/12", box.VertexCount(), box.TriangleCount())
	}
	for _, v := range box.Vertices {
		if v != (vec3d.T{1, 2, 3}) {
			t.Fatalf("point box corner = %v, want (1,2,3)", v)
		}
	}
}

func TestMarginZeroIsIdentity(t *testing.T) {
	in := []*geom.Mesh{tetra()}
	out := Margin(in, 0)
	if len(out) != 1 {
		t.Fatalf("part count = %d, want 1", len(out))
	}
	for i, v := range out[0].Vertices {
		if v != in[0].Vertices[i] {
			t.Errorf("vertex %d moved: %v -> %v", i, in[0].Vertices[i], v)
		}
	}
}

func TestMarginRoundTrip(t *testing.T) {
	const m = 0.1
	in := []*geom.Mesh{tetra()}
	expanded := Margin(in, m)
	restored := Margin(expanded, -m/(1+m))
	for i, v := range restored[0].Vertices {
		orig := in[0].Vertices[i]
		for k := 0; k < 3; k++ {
			if math.Abs(v[k]-orig[k]) > 1e-12 {
				t.Fatalf("vertex %d not restored: %v vs %v", i, v, orig)
			}
		}
	}
}

func TestMarginPreservesTopology(t *testing.T) {
	in := tetra()
	out := Margin([]*geom.Mesh{in}, 0.25)[0]
	if out.VertexCount() != in.VertexCount() || out.TriangleCount() != in.TriangleCount() {
		t.Fatalf("topology changed: %d/%d -> %d/%d",
			in.VertexCount(), in.TriangleCount(), out.VertexCount(), out.TriangleCount())
	}
	for i, f := range out.Faces {
		if f != in.Faces[i] {
			t.Errorf("face %d changed: %v -> %v", i, in.Faces[i], f)
		}
	}
}

// TestMarginPerPartIndependence verifies each part scales about its own
// centroid, not a shared one.
func TestMarginPerPartIndependence(t *testing.T) {
	a := tetra()
	b := tetra()
	for i := range b.Vertices {
		b.Vertices[i][0] += 100
	}
	out := Margin([]*geom.Mesh{a, b}, 0.1)

	ca, cb := a.Centroid(), b.Centroid()
	oa, ob := out[0].Centroid(), out[1].Centroid()
	for k := 0; k < 3; k++ {
		if math.Abs(ca[k]-oa[k]) > 1e-9 {
			t.Fatalf("part 0 centroid moved: %v -> %v", ca, oa)
		}
		if math.Abs(cb[k]-ob[k]) > 1e-9 {
			t.Fatalf("part 1 centroid moved: %v -> %v", cb, ob)
		}
	}
}

func TestMarginDoesNotMutateInput(t *testing.T) {
	in := tetra()
	orig := in.Clone()
	Margin([]*geom.Mesh{in}, 0.5)
	for i, v := range in.Vertices {
		if v != orig.Vertices[i] {
			t.Fatalf("input vertex %d mutated", i)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"ch", ModeConvexHull, false},
		{"box", ModeBox, false},
		{"sphere", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyOrder(t *testing.T) {
	// Box mode plus margin: the margin must scale the box, so the result's
	// bounds exceed the unit cube.
	out := Apply([]*geom.Mesh{tetra()}, Options{Mode: ModeBox, ExtrudeMargin: 0.1})
	if len(out) != 1 {
		t.Fatalf("part count = %d, want 1", len(out))
	}
	p := out[0]
	if p.VertexCount() != 8 {
		t.Fatalf("expected box geometry after Apply, got %d vertices", p.VertexCount())
	}
	bb := p.Bounds()
	if bb.Max[0] <= 1.0 {
		t.Errorf("margin not applied to box: max x = %g", bb.Max[0])
	}
}
