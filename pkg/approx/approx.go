// Package approx post-processes normalized decomposition parts. Boxes
// replaces each hull with its axis-aligned bounding box; Margin grows or
// shrinks each part about its own centroid. Both return new part lists,
// preserving count and order, and never mutate their input.
package approx

import (
	"fmt"

	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// Mode selects how hulls are approximated before export.
type Mode int

const (
	ModeConvexHull Mode = iota // keep hulls as produced by the decomposer
	ModeBox                    // replace each hull with its AABB
)

func (m Mode) String() string {
	switch m {
	case ModeConvexHull:
		return "ch"
	case ModeBox:
		return "box"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts an approximate_mode config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "ch":
		return ModeConvexHull, nil
	case "box":
		return ModeBox, nil
	default:
		return 0, fmt.Errorf("unknown approximate_mode %q, want \"ch\" or \"box\"", s)
	}
}

// Options bundles the approximation post-processing settings.
type Options struct {
	Mode Mode

	// ExtrudeMargin is a signed fraction: 0.1 grows every part by 10%
	// about its centroid, -0.1 shrinks it by 10%. Zero is a no-op.
	ExtrudeMargin float64
}

// boxFaces is the fixed triangle table for an AABB. Corner order is the
// mins corner first, then the remaining corners in the canonical order
// +X, +X+Y, +Y, +Z, +X+Z, +X+Y+Z, +Y+Z. Every triangle winds CCW viewed
// from outside the box. Downstream consumers rely on this exact layout.
var boxFaces = [12][3]int32{
	// bottom (z = min, normal -Z)
	{0, 2, 1}, {0, 3, 2},
	// top (z = max, normal +Z)
	{4, 5, 6}, {4, 6, 7},
	// front (y = min, normal -Y)
	{0, 1, 5}, {0, 5, 4},
	// back (y = max, normal +Y)
	{2, 3, 7}, {2, 7, 6},
	// left (x = min, normal -X)
	{0, 4, 7}, {0, 7, 3},
	// right (x = max, normal +X)
	{1, 2, 6}, {1, 6, 5},
}

// Boxes replaces every part with its axis-aligned bounding box: 8 corner
// vertices and 12 triangles per part. A part whose extent collapses on
// one or more axes still produces a valid, possibly flat, box.
func Boxes(parts []*geom.Mesh) []*geom.Mesh {
	out := make([]*geom.Mesh, len(parts))
	for i, part := range parts {
		bb := part.Bounds()
		min, max := bb.Min, bb.Max
		box := &geom.Mesh{
			Vertices: []vec3d.T{
				{min[0], min[1], min[2]},
				{max[0], min[1], min[2]},
				{max[0], max[1], min[2]},
				{min[0], max[1], min[2]},
				{min[0], min[1], max[2]},
				{max[0], min[1], max[2]},
				{max[0], max[1], max[2]},
				{min[0], max[1], max[2]},
			},
			Faces: make([][3]int32, len(boxFaces)),
		}
		copy(box.Faces, boxFaces[:])
		out[i] = box
	}
	return out
}

// Margin scales every part's vertices about that part's centroid by
// 1 + margin. Faces are untouched; vertex and triangle counts are
// preserved. A zero margin returns the input list unchanged.
func Margin(parts []*geom.Mesh, margin float64) []*geom.Mesh {
	if margin == 0 {
		return parts
	}
	scale := 1.0 + margin
	out := make([]*geom.Mesh, len(parts))
	for i, part := range parts {
		c := part.Centroid()
		scaled := part.Clone()
		for vi := range scaled.Vertices {
			d := vec3d.Sub(&scaled.Vertices[vi], &c)
			scaled.Vertices[vi] = vec3d.T{
				c[0] + d[0]*scale,
				c[1] + d[1]*scale,
				c[2] + d[2]*scale,
			}
		}
		out[i] = scaled
	}
	return out
}

// Apply runs the configured post-processing stages in order: box
// conversion first, then margin scaling, so a margin always acts on
// whichever geometry is active.
func Apply(parts []*geom.Mesh, opts Options) []*geom.Mesh {
	if opts.Mode == ModeBox {
		parts = Boxes(parts)
	}
	return Margin(parts, opts.ExtrudeMargin)
}
