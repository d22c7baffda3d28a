package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chamferlabs/collidergen/pkg/approx"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Decompose.Threshold != 0.05 {
		t.Errorf("default threshold = %g, want 0.05", cfg.Decompose.Threshold)
	}
	if cfg.Decompose.MaxConvexHull != -1 {
		t.Errorf("default max_convex_hull = %d, want -1", cfg.Decompose.MaxConvexHull)
	}
	if cfg.ApproximateMode != "ch" {
		t.Errorf("default approximate_mode = %q, want ch", cfg.ApproximateMode)
	}
	if cfg.ExtrudeMargin != 0 {
		t.Errorf("default extrude_margin = %g, want 0", cfg.ExtrudeMargin)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
decompose:
  threshold: 0.1
  mcts_nodes: 40
approximate_mode: box
extrude_margin: 0.05
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Decompose.Threshold != 0.1 {
		t.Errorf("threshold = %g, want 0.1", cfg.Decompose.Threshold)
	}
	if cfg.Decompose.MCTSNodes != 40 {
		t.Errorf("mcts_nodes = %d, want 40", cfg.Decompose.MCTSNodes)
	}
	// Untouched keys keep their defaults.
	if cfg.Decompose.Resolution != 2000 {
		t.Errorf("resolution = %d, want default 2000", cfg.Decompose.Resolution)
	}
	if cfg.ApproximateMode != "box" || cfg.ExtrudeMargin != 0.05 {
		t.Errorf("approx = %q/%g, want box/0.05", cfg.ApproximateMode, cfg.ExtrudeMargin)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Decompose.Threshold != 0.05 {
		t.Errorf("empty path should yield defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing config file should fail")
	}
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := Default()
	cfg.ApproximateMode = "sphere"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown approximate_mode should fail validation")
	}
}

func TestApproxOptions(t *testing.T) {
	cfg := Default()
	cfg.ApproximateMode = "box"
	cfg.ExtrudeMargin = -0.1
	opts, err := cfg.ApproxOptions()
	if err != nil {
		t.Fatalf("ApproxOptions: %v", err)
	}
	if opts.Mode != approx.ModeBox || opts.ExtrudeMargin != -0.1 {
		t.Errorf("opts = %+v, want box/-0.1", opts)
	}
}
