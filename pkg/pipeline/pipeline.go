// Package pipeline wires the collider generation flow: load the source
// mesh, hand it to the decomposition backend, normalize every result part,
// run the approximation post-processing, and compute the fidelity report.
// Every stage is a synchronous pure transformation; the pipeline holds no
// state between runs and performs no file I/O itself.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chamferlabs/collidergen/pkg/approx"
	"github.com/chamferlabs/collidergen/pkg/config"
	"github.com/chamferlabs/collidergen/pkg/decomp"
	"github.com/chamferlabs/collidergen/pkg/geom"
	"github.com/chamferlabs/collidergen/pkg/meshio"
	"github.com/chamferlabs/collidergen/pkg/metrics"
)

// Pipeline binds the external collaborators together. Both are injected
// so the flow can run against synthetic fixtures in tests.
type Pipeline struct {
	loader     meshio.Loader
	decomposer decomp.Decomposer
	log        *zap.Logger
}

// New creates a pipeline. A nil logger disables logging.
func New(loader meshio.Loader, decomposer decomp.Decomposer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{loader: loader, decomposer: decomposer, log: log}
}

// Result is one finished run: the original mesh, the post-processed part
// list in decomposition emission order, and the fidelity report.
type Result struct {
	Source string
	Mesh   *geom.Mesh
	Parts  []*geom.Mesh
	Report metrics.Report
}

// Run executes the full flow for one input file. Normalization failures
// abort the run with no partial result; metric degeneracies do not.
func (p *Pipeline) Run(ctx context.Context, inputPath string, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	approxOpts, err := cfg.ApproxOptions()
	if err != nil {
		return nil, err
	}

	mesh, err := p.loader.Load(inputPath)
	if err != nil {
		return nil, err
	}
	p.log.Info("mesh loaded",
		zap.String("input", inputPath),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)

	raws, err := p.decomposer.Decompose(ctx, mesh, cfg.Decompose)
	if err != nil {
		return nil, fmt.Errorf("decompose %s: %w", inputPath, err)
	}

	// Single admission gate: every part is normalized before any other
	// stage sees it. A malformed part fails the whole run; silently
	// dropping pieces would corrupt the collider set.
	parts := make([]*geom.Mesh, len(raws))
	for i, raw := range raws {
		part, err := decomp.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		parts[i] = part
	}
	p.log.Info("decomposition complete",
		zap.Int("parts", len(parts)),
		zap.Float64("threshold", cfg.Decompose.Threshold),
	)

	if approxOpts.Mode == approx.ModeBox {
		p.log.Info("replacing hulls with bounding boxes")
	}
	if approxOpts.ExtrudeMargin != 0 {
		p.log.Info("applying extrusion margin",
			zap.Float64("margin", approxOpts.ExtrudeMargin),
			zap.Float64("scale_factor", 1+approxOpts.ExtrudeMargin),
		)
	}
	parts = approx.Apply(parts, approxOpts)

	report := metrics.Compute(mesh, parts)
	p.log.Debug("metrics computed",
		zap.Float64("volume_original", float64(report.VM)),
		zap.Float64("volume_collider", float64(report.VC)),
	)

	return &Result{
		Source: inputPath,
		Mesh:   mesh,
		Parts:  parts,
		Report: report,
	}, nil
}
