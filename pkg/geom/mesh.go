// Package geom defines the triangle mesh model shared by every pipeline
// stage. A mesh owns its vertex array; face indices are 0-based and local
// to the mesh, never shared across meshes.
package geom

import (
	"fmt"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

// Mesh is an indexed triangle mesh in double precision.
type Mesh struct {
	Vertices []vec3d.T
	Faces    [][3]int32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Clone returns a deep copy of the mesh. Stages that rewrite geometry
// operate on clones so the input mesh is never mutated in place.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]vec3d.T, len(m.Vertices)),
		Faces:    make([][3]int32, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Faces, m.Faces)
	return out
}

// Validate checks that every face index is in range [0, VertexCount).
func (m *Mesh) Validate() error {
	n := int32(len(m.Vertices))
	for fi, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d references vertex %d, mesh has %d vertices", fi, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
// An empty mesh yields the zero box.
func (m *Mesh) Bounds() vec3d.Box {
	if len(m.Vertices) == 0 {
		return vec3d.Box{}
	}
	bb := vec3d.MinBox
	for i := range m.Vertices {
		bb.Extend(&m.Vertices[i])
	}
	return bb
}

// Centroid returns the arithmetic mean of the vertices, not the
// volume-weighted center of mass. An empty mesh yields the zero vector.
func (m *Mesh) Centroid() vec3d.T {
	if len(m.Vertices) == 0 {
		return vec3d.T{}
	}
	var sum vec3d.T
	for i := range m.Vertices {
		sum.Add(&m.Vertices[i])
	}
	inv := 1.0 / float64(len(m.Vertices))
	return vec3d.T{sum[0] * inv, sum[1] * inv, sum[2] * inv}
}

// SignedVolume computes the enclosed volume via the divergence theorem,
// summing dot(v0, cross(v1, v2))/6 over all triangles. The result is
// positive for a closed mesh with outward CCW winding and meaningless
// for open meshes; callers get whatever the formula yields.
func (m *Mesh) SignedVolume() float64 {
	var vol float64
	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]]
		v1 := m.Vertices[f[1]]
		v2 := m.Vertices[f[2]]
		c := vec3d.Cross(&v1, &v2)
		vol += vec3d.Dot(&v0, &c)
	}
	return vol / 6.0
}

// SurfaceArea returns the sum of all triangle areas.
func (m *Mesh) SurfaceArea() float64 {
	var area float64
	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]]
		e1 := vec3d.Sub(&m.Vertices[f[1]], &v0)
		e2 := vec3d.Sub(&m.Vertices[f[2]], &v0)
		c := vec3d.Cross(&e1, &e2)
		area += c.Length()
	}
	return area / 2.0
}
