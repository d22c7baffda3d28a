package decomp

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// PartSource is implemented by backends whose result items natively expose
// vertex and face collections. Items of this shape are read directly.
type PartSource interface {
	PartVertices() []vec3d.T
	PartFaces() [][3]int32
}

// MeshPart adapts a geom.Mesh to the PartSource interface.
type MeshPart struct {
	Mesh *geom.Mesh
}

func (p MeshPart) PartVertices() []vec3d.T { return p.Mesh.Vertices }
func (p MeshPart) PartFaces() [][3]int32   { return p.Mesh.Faces }

// rawKind tags the accepted input variants.
type rawKind int

const (
	rawSource rawKind = iota // object exposing vertex/face collections
	rawPair                  // 2-element ordered (vertices, faces) pair
	rawMap                   // keyed mapping with vertices + faces/triangles
)

// RawPart is one decomposition result item before normalization. It is a
// tagged union over the three accepted input shapes; construct one with
// FromSource, FromPair, or FromMap, or let Classify pick the variant for
// a dynamically shaped value.
type RawPart struct {
	kind    rawKind
	src     PartSource
	verts   any
	faces   any
	mapping map[string]any
}

// FromSource wraps an item that exposes vertex and face collections.
func FromSource(s PartSource) RawPart {
	return RawPart{kind: rawSource, src: s}
}

// FromPair wraps a positional (vertices, faces) pair.
func FromPair(vertices, faces any) RawPart {
	return RawPart{kind: rawPair, verts: vertices, faces: faces}
}

// FromMap wraps a keyed mapping. The mapping must contain a "vertices" key
// and either a "faces" or a "triangles" key; "faces" wins if both exist.
// Missing keys are reported by Normalize, not here.
func FromMap(m map[string]any) RawPart {
	return RawPart{kind: rawMap, mapping: m}
}

// Classify is the admission gate for dynamically shaped result items,
// e.g. values decoded from a backend's JSON output. Shapes are checked in
// precedence order: PartSource implementor, then 2-element slice/array
// pair, then string-keyed mapping. Anything else fails with
// UnsupportedPartShapeError.
func Classify(v any) (RawPart, error) {
	if s, ok := v.(PartSource); ok {
		return FromSource(s), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 2 {
			return FromPair(rv.Index(0).Interface(), rv.Index(1).Interface()), nil
		}
	case reflect.Map:
		if m, ok := v.(map[string]any); ok {
			return FromMap(m), nil
		}
	}

	return RawPart{}, &UnsupportedPartShapeError{Type: fmt.Sprintf("%T", v)}
}

// Normalize converts a raw part into a concrete mesh with vertices as
// float64 triples and faces as 0-based int32 triples. Every part must pass
// through here before any other processing stage sees it.
func Normalize(p RawPart) (*geom.Mesh, error) {
	switch p.kind {
	case rawSource:
		if p.src == nil {
			return nil, &UnsupportedPartShapeError{Type: "uninitialized RawPart"}
		}
		src := &geom.Mesh{
			Vertices: p.src.PartVertices(),
			Faces:    p.src.PartFaces(),
		}
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("normalize part: %w", err)
		}
		// Copy so later stages never alias backend storage.
		return src.Clone(), nil

	case rawPair:
		return buildMesh(p.verts, p.faces)

	case rawMap:
		verts, hasVerts := p.mapping["vertices"]
		faces, hasFaces := p.mapping["faces"]
		if !hasFaces {
			faces, hasFaces = p.mapping["triangles"]
		}
		if !hasVerts || !hasFaces {
			return nil, &UnsupportedPartShapeError{
				Type: fmt.Sprintf("%T", p.mapping),
				Keys: sortedKeys(p.mapping),
			}
		}
		return buildMesh(verts, faces)

	default:
		return nil, &UnsupportedPartShapeError{Type: fmt.Sprintf("raw part kind %d", p.kind)}
	}
}

// buildMesh coerces dynamic vertex and face payloads and validates the
// resulting index ranges.
func buildMesh(verts, faces any) (*geom.Mesh, error) {
	v, err := coerceVertices(verts)
	if err != nil {
		return nil, err
	}
	f, err := coerceFaces(faces)
	if err != nil {
		return nil, err
	}
	m := &geom.Mesh{Vertices: v, Faces: f}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("normalize part: %w", err)
	}
	return m, nil
}

// coerceVertices accepts the vertex containers backends are known to
// produce: typed vectors, [3]float64 triples, a flat float64 array, or
// JSON-decoded nested []any rows.
func coerceVertices(v any) ([]vec3d.T, error) {
	switch vv := v.(type) {
	case []vec3d.T:
		out := make([]vec3d.T, len(vv))
		copy(out, vv)
		return out, nil

	case [][3]float64:
		out := make([]vec3d.T, len(vv))
		for i, row := range vv {
			out[i] = vec3d.T(row)
		}
		return out, nil

	case []float64:
		if len(vv)%3 != 0 {
			return nil, &UnsupportedPartShapeError{Type: fmt.Sprintf("flat vertex array of length %d", len(vv))}
		}
		out := make([]vec3d.T, len(vv)/3)
		for i := range out {
			out[i] = vec3d.T{vv[i*3], vv[i*3+1], vv[i*3+2]}
		}
		return out, nil

	case []any:
		out := make([]vec3d.T, 0, len(vv))
		for _, row := range vv {
			t, err := numberTriple(row)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil

	default:
		return nil, &UnsupportedPartShapeError{Type: fmt.Sprintf("vertex container %T", v)}
	}
}

// coerceFaces accepts the face containers backends are known to produce.
// Indices must be integral; fractional values are a shape error, not a
// rounding opportunity.
func coerceFaces(v any) ([][3]int32, error) {
	switch fv := v.(type) {
	case [][3]int32:
		out := make([][3]int32, len(fv))
		copy(out, fv)
		return out, nil

	case [][3]int:
		out := make([][3]int32, len(fv))
		for i, row := range fv {
			out[i] = [3]int32{int32(row[0]), int32(row[1]), int32(row[2])}
		}
		return out, nil

	case []int32:
		if len(fv)%3 != 0 {
			return nil, &UnsupportedPartShapeError{Type: fmt.Sprintf("flat face array of length %d", len(fv))}
		}
		out := make([][3]int32, len(fv)/3)
		for i := range out {
			out[i] = [3]int32{fv[i*3], fv[i*3+1], fv[i*3+2]}
		}
		return out, nil

	case []int:
		if len(fv)%3 != 0 {
			return nil, &UnsupportedPartShapeError{Type: fmt.Sprintf("flat face array of length %d", len(fv))}
		}
		out := make([][3]int32, len(fv)/3)
		for i := range out {
			out[i] = [3]int32{int32(fv[i*3]), int32(fv[i*3+1]), int32(fv[i*3+2])}
		}
		return out, nil

	case []any:
		out := make([][3]int32, 0, len(fv))
		for _, row := range fv {
			t, err := numberTriple(row)
			if err != nil {
				return nil, err
			}
			var idx [3]int32
			for i, x := range t {
				if x != math.Trunc(x) {
					return nil, &UnsupportedPartShapeError{Type: fmt.Sprintf("non-integral face index %g", x)}
				}
				idx[i] = int32(x)
			}
			out = append(out, idx)
		}
		return out, nil

	default:
		return nil, &UnsupportedPartShapeError{Type: fmt.Sprintf("face container %T", v)}
	}
}

// numberTriple extracts exactly three numbers from a dynamic row.
func numberTriple(row any) (vec3d.T, error) {
	switch r := row.(type) {
	case vec3d.T:
		return r, nil
	case [3]float64:
		return vec3d.T(r), nil
	case []float64:
		if len(r) != 3 {
			return vec3d.T{}, &UnsupportedPartShapeError{Type: fmt.Sprintf("row of length %d", len(r))}
		}
		return vec3d.T{r[0], r[1], r[2]}, nil
	case []any:
		if len(r) != 3 {
			return vec3d.T{}, &UnsupportedPartShapeError{Type: fmt.Sprintf("row of length %d", len(r))}
		}
		var t vec3d.T
		for i, x := range r {
			n, err := asNumber(x)
			if err != nil {
				return vec3d.T{}, err
			}
			t[i] = n
		}
		return t, nil
	default:
		return vec3d.T{}, &UnsupportedPartShapeError{Type: fmt.Sprintf("row %T", row)}
	}
}

func asNumber(x any) (float64, error) {
	switch n := x.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, &UnsupportedPartShapeError{Type: fmt.Sprintf("scalar %T", x)}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
