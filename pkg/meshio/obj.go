package meshio

import (
	"fmt"
	"os"
	"strings"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/g3n/engine/loader/obj"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// loadOBJ reads a Wavefront OBJ file and flattens every object in the
// scene into a single mesh. All objects in an OBJ file index one shared
// vertex array, so flattening keeps indices intact.
func loadOBJ(path string) (*geom.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input mesh: %w", err)
	}
	defer f.Close()

	// No material library: geometry is all we need.
	dec, err := obj.DecodeReader(f, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("parse obj %s: %w", path, err)
	}

	if len(dec.Vertices)%3 != 0 {
		return nil, fmt.Errorf("parse obj %s: vertex array length %d not divisible by 3", path, len(dec.Vertices))
	}
	mesh := &geom.Mesh{
		Vertices: make([]vec3d.T, len(dec.Vertices)/3),
	}
	for i := range mesh.Vertices {
		mesh.Vertices[i] = vec3d.T{
			float64(dec.Vertices[i*3]),
			float64(dec.Vertices[i*3+1]),
			float64(dec.Vertices[i*3+2]),
		}
	}

	n := len(mesh.Vertices)
	for _, object := range dec.Objects {
		for _, face := range object.Faces {
			if len(face.Vertices) < 3 {
				return nil, fmt.Errorf("parse obj %s: object %q has a face with %d vertices", path, object.Name, len(face.Vertices))
			}
			// Fan triangulation handles quads and larger polygons.
			for k := 2; k < len(face.Vertices); k++ {
				tri := [3]int32{
					int32(face.Vertices[0]),
					int32(face.Vertices[k-1]),
					int32(face.Vertices[k]),
				}
				for _, idx := range tri {
					if idx < 0 || int(idx) >= n {
						return nil, fmt.Errorf("parse obj %s: face index %d out of range [0,%d)", path, idx, n)
					}
				}
				mesh.Faces = append(mesh.Faces, tri)
			}
		}
	}

	if mesh.IsEmpty() || mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("parse obj %s: no triangles found", path)
	}
	return mesh, nil
}
