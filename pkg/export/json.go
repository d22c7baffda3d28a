package export

import (
	"fmt"
	"io"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/segmentio/encoding/json"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// Artifact is the flat JSON decomposition structure. Indices stay
// part-local and 0-based; there is no global offsetting in this format.
type Artifact struct {
	Source    string     `json:"source"`
	Threshold float64    `json:"threshold"`
	Parts     []PartJSON `json:"parts"`
}

// PartJSON holds one part with row-major flattened arrays:
// vertices [x0,y0,z0,x1,...] of length 3N, indices of length 3M.
type PartJSON struct {
	Vertices []float64 `json:"vertices"`
	Indices  []int32   `json:"indices"`
}

// BuildArtifact flattens a part list into the JSON artifact shape.
func BuildArtifact(source string, threshold float64, parts []*geom.Mesh) Artifact {
	a := Artifact{
		Source:    source,
		Threshold: threshold,
		Parts:     make([]PartJSON, len(parts)),
	}
	for i, part := range parts {
		p := PartJSON{
			Vertices: make([]float64, 0, part.VertexCount()*3),
			Indices:  make([]int32, 0, part.TriangleCount()*3),
		}
		for _, v := range part.Vertices {
			p.Vertices = append(p.Vertices, v[0], v[1], v[2])
		}
		for _, f := range part.Faces {
			p.Indices = append(p.Indices, f[0], f[1], f[2])
		}
		a.Parts[i] = p
	}
	return a
}

// WriteJSON encodes the artifact to w.
func WriteJSON(w io.Writer, a Artifact) error {
	enc := json.NewEncoder(w)
	return enc.Encode(a)
}

// DecodeJSON parses an artifact previously produced by WriteJSON.
func DecodeJSON(r io.Reader) (Artifact, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Artifact{}, fmt.Errorf("decode collider json: %w", err)
	}
	return a, nil
}

// Mesh reconstructs the part's mesh from the flattened arrays.
func (p PartJSON) Mesh() (*geom.Mesh, error) {
	if len(p.Vertices)%3 != 0 {
		return nil, fmt.Errorf("vertex array length %d not divisible by 3", len(p.Vertices))
	}
	if len(p.Indices)%3 != 0 {
		return nil, fmt.Errorf("index array length %d not divisible by 3", len(p.Indices))
	}
	m := &geom.Mesh{
		Vertices: make([]vec3d.T, len(p.Vertices)/3),
		Faces:    make([][3]int32, len(p.Indices)/3),
	}
	for i := range m.Vertices {
		m.Vertices[i] = vec3d.T{p.Vertices[i*3], p.Vertices[i*3+1], p.Vertices[i*3+2]}
	}
	for i := range m.Faces {
		m.Faces[i] = [3]int32{p.Indices[i*3], p.Indices[i*3+1], p.Indices[i*3+2]}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
