//go:build !coacd

// Package coacd binds the CoACD approximate convex decomposition library
// (https://github.com/SarahWeiii/CoACD). When the "coacd" build tag is not
// set, this stub package is compiled instead, returning an error from
// New().
//
// Build with: go build -tags=coacd
package coacd

import (
	"errors"

	"github.com/chamferlabs/collidergen/pkg/decomp"
)

// New returns an error indicating the CoACD backend is not available.
// Build with -tags=coacd to enable.
func New() (decomp.Decomposer, error) {
	return nil, errors.New("coacd backend not available: build with -tags=coacd")
}
