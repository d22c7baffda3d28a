package meshio

import (
	"fmt"

	stl "github.com/flywave/go-stl"
	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// loadSTL reads an STL file (binary or ASCII). STL stores an unindexed
// triangle soup, so identical corner coordinates are merged back into
// shared vertices to recover an indexed mesh.
func loadSTL(path string) (*geom.Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stl %s: %w", path, err)
	}
	if len(solid.Triangles) == 0 {
		return nil, fmt.Errorf("read stl %s: no triangles found", path)
	}

	mesh := &geom.Mesh{}
	index := make(map[[3]float32]int32)

	for _, tri := range solid.Triangles {
		var face [3]int32
		for i, v := range tri.Vertices {
			key := [3]float32{v[0], v[1], v[2]}
			idx, ok := index[key]
			if !ok {
				idx = int32(len(mesh.Vertices))
				index[key] = idx
				mesh.Vertices = append(mesh.Vertices, vec3d.T{
					float64(v[0]), float64(v[1]), float64(v[2]),
				})
			}
			face[i] = idx
		}
		mesh.Faces = append(mesh.Faces, face)
	}

	return mesh, nil
}
