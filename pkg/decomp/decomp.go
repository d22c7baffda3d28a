// Package decomp defines the boundary to the external convex decomposition
// backend. The backend is an opaque collaborator: it receives a mesh and an
// option bundle and returns result items in one of a few loosely specified
// shapes. Everything downstream of this package operates on normalized
// geom.Mesh parts only; Normalize is the single admission gate.
package decomp

import (
	"context"
	"fmt"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// Options is the decomposition configuration bundle. Field names and
// defaults follow the CoACD parameter surface.
type Options struct {
	// Threshold is the concavity tolerance in [0.01, 1.0].
	// Lower values produce more accurate results with more parts.
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// MaxConvexHull caps the number of hulls, -1 means unlimited.
	MaxConvexHull int `yaml:"max_convex_hull" json:"max_convex_hull"`

	// PreprocessResolution controls manifold preprocessing detail.
	PreprocessResolution int `yaml:"preprocess_resolution" json:"preprocess_resolution"`

	// Resolution is the sampling resolution for hull generation.
	Resolution int `yaml:"resolution" json:"resolution"`

	MCTSNodes      int `yaml:"mcts_nodes" json:"mcts_nodes"`
	MCTSIterations int `yaml:"mcts_iterations" json:"mcts_iterations"`
	MCTSMaxDepth   int `yaml:"mcts_max_depth" json:"mcts_max_depth"`

	// PCA enables principal component analysis pre-alignment.
	PCA bool `yaml:"pca" json:"pca"`
}

// DefaultOptions returns the backend's documented defaults.
func DefaultOptions() Options {
	return Options{
		Threshold:            0.05,
		MaxConvexHull:        -1,
		PreprocessResolution: 50,
		Resolution:           2000,
		MCTSNodes:            20,
		MCTSIterations:       150,
		MCTSMaxDepth:         3,
		PCA:                  false,
	}
}

// Validate checks option ranges the backend would reject.
func (o Options) Validate() error {
	if o.Threshold < 0.01 || o.Threshold > 1.0 {
		return fmt.Errorf("threshold %g out of range [0.01, 1.0]", o.Threshold)
	}
	if o.MaxConvexHull < -1 {
		return fmt.Errorf("max_convex_hull %d invalid, use -1 for unlimited", o.MaxConvexHull)
	}
	return nil
}

// Decomposer is the abstract decomposition backend. Decompose is a single
// opaque synchronous call: it returns the full result set or fails, with
// no partial-result streaming.
type Decomposer interface {
	Decompose(ctx context.Context, mesh *geom.Mesh, opts Options) ([]RawPart, error)
}

// Identity is a Decomposer that skips decomposition entirely and returns
// the input mesh as a single part. Useful for debugging the
// post-processing stages and for meshes that are already convex.
type Identity struct{}

var _ Decomposer = Identity{}

func (Identity) Decompose(ctx context.Context, mesh *geom.Mesh, opts Options) ([]RawPart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []RawPart{FromSource(MeshPart{Mesh: mesh})}, nil
}
