// Package meshio loads source meshes from disk. The loader is the input
// boundary of the pipeline: it either produces a single triangulated mesh
// or fails fast with a descriptive error, before any processing begins.
package meshio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// ErrUnsupportedFormat indicates a file extension no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Loader turns a file path into a mesh. Implementations must return
// vertices as float64 triples and 0-based triangulated faces.
type Loader interface {
	Load(path string) (*geom.Mesh, error)
}

// FileLoader reads OBJ and STL files, dispatching on file extension.
type FileLoader struct{}

// Compile-time interface check.
var _ Loader = FileLoader{}

// Load reads the mesh at path. Multi-object scenes are flattened into one
// mesh; polygonal faces are fan-triangulated.
func (FileLoader) Load(path string) (*geom.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return loadOBJ(path)
	case ".stl":
		return loadSTL(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
