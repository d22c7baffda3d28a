// collidergen decomposes a triangle mesh into convex collision proxies,
// optionally approximates them as bounding boxes, applies an extrusion
// margin, and writes the result as a multi-object OBJ or a flat JSON
// artifact together with a fidelity report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/chamferlabs/collidergen/pkg/config"
	"github.com/chamferlabs/collidergen/pkg/decomp"
	"github.com/chamferlabs/collidergen/pkg/decomp/coacd"
	"github.com/chamferlabs/collidergen/pkg/export"
	"github.com/chamferlabs/collidergen/pkg/logger"
	"github.com/chamferlabs/collidergen/pkg/meshio"
	"github.com/chamferlabs/collidergen/pkg/metrics"
	"github.com/chamferlabs/collidergen/pkg/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "collidergen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "YAML configuration file")
		threshold   = flag.Float64("threshold", 0.05, "concavity threshold (0.01-1.0), lower = more accurate but more parts")
		maxHulls    = flag.Int("max-convex-hull", -1, "maximum number of convex hulls (-1 = no limit)")
		prepRes     = flag.Int("preprocess-resolution", 50, "preprocessing resolution")
		resolution  = flag.Int("resolution", 2000, "sampling resolution for manifold")
		mctsNodes   = flag.Int("mcts-nodes", 20, "MCTS sampling nodes")
		mctsIters   = flag.Int("mcts-iterations", 150, "MCTS iterations")
		mctsDepth   = flag.Int("mcts-max-depth", 3, "MCTS max search depth")
		pca         = flag.Bool("pca", false, "use PCA for initial partitioning")
		approxMode  = flag.String("approximate-mode", "ch", "approximation mode: 'ch' for convex hulls, 'box' for bounding boxes")
		margin      = flag.Float64("extrude-margin", 0, "percentage-based scaling: 0.1 = 10% expansion, -0.1 = 10% contraction")
		metricsPath = flag.String("metrics", "", "write fidelity metrics JSON to this path")
		noDecompose = flag.Bool("no-decompose", false, "skip decomposition, treat the whole mesh as one part (debugging aid)")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
		logFile     = flag.String("log-file", "", "optional rotated log file")
	)
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 2 {
		printUsage()
		return fmt.Errorf("expected <input> and <output> arguments, got %d", flag.NArg())
	}
	input, output := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// Explicitly set flags override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "threshold":
			cfg.Decompose.Threshold = *threshold
		case "max-convex-hull":
			cfg.Decompose.MaxConvexHull = *maxHulls
		case "preprocess-resolution":
			cfg.Decompose.PreprocessResolution = *prepRes
		case "resolution":
			cfg.Decompose.Resolution = *resolution
		case "mcts-nodes":
			cfg.Decompose.MCTSNodes = *mctsNodes
		case "mcts-iterations":
			cfg.Decompose.MCTSIterations = *mctsIters
		case "mcts-max-depth":
			cfg.Decompose.MCTSMaxDepth = *mctsDepth
		case "pca":
			cfg.Decompose.PCA = *pca
		case "approximate-mode":
			cfg.ApproximateMode = *approxMode
		case "extrude-margin":
			cfg.ExtrudeMargin = *margin
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-file":
			cfg.Logging.File = *logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file does not exist: %s", input)
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	log := logger.New(logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	defer log.Sync()

	var backend decomp.Decomposer
	if *noDecompose {
		backend = decomp.Identity{}
	} else {
		backend, err = coacd.New()
		if err != nil {
			return err
		}
	}

	p := pipeline.New(meshio.FileLoader{}, backend, log)
	res, err := p.Run(context.Background(), input, cfg)
	if err != nil {
		return err
	}

	if err := writeColliders(output, input, cfg, res); err != nil {
		return err
	}
	if *metricsPath != "" {
		if err := writeMetrics(*metricsPath, res); err != nil {
			return err
		}
		log.Info("metrics written", zap.String("path", *metricsPath))
	}

	modeName := "Convex Hulls"
	if cfg.ApproximateMode == "box" {
		modeName = "Bounding Boxes"
	}
	fmt.Printf("Wrote decomposition for %s -> %s\n", input, output)
	fmt.Printf("  Mode: %s\n", modeName)
	fmt.Printf("  Parts: %d\n", len(res.Parts))
	if cfg.ExtrudeMargin != 0 {
		fmt.Printf("  Extrusion: %+.1f%%\n", cfg.ExtrudeMargin*100)
	}
	return nil
}

// writeColliders writes the part list to disk, as a flat JSON artifact
// when the output path ends in .json and as a multi-object OBJ otherwise.
func writeColliders(output, input string, cfg *config.Config, res *pipeline.Result) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(output), ".json") {
		artifact := export.BuildArtifact(input, cfg.Decompose.Threshold, res.Parts)
		err = export.WriteJSON(f, artifact)
	} else {
		err = export.WriteOBJ(f, res.Parts)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("write colliders: %w", err)
	}
	return f.Close()
}

func writeMetrics(path string, res *pipeline.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	if err := metrics.WriteJSON(f, res.Report); err != nil {
		f.Close()
		return fmt.Errorf("write metrics json: %w", err)
	}
	return f.Close()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `collidergen - convex collision proxy generator

Usage:
  collidergen [flags] <input> <output>

  input   mesh file (OBJ or STL)
  output  collider file; .json for the flat JSON artifact,
          anything else for multi-object OBJ

Flags:`)
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, `
Examples:
  collidergen model.obj colliders.obj
  collidergen -threshold 0.02 -approximate-mode box model.stl colliders.obj
  collidergen -extrude-margin 0.1 -metrics report.json model.obj colliders.json`)
}
