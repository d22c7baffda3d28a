// Package metrics compares an original mesh against its generated collider
// set. Parts are treated as one compound collider: volumes and areas are
// summed per part, never boolean-unioned, and the collider bounding box is
// a single min/max pass pooling every vertex of every part. Degenerate
// denominators never abort the report; the affected metric simply comes
// out undefined.
package metrics

import (
	"io"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/segmentio/encoding/json"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// Report holds the comparison between one reference mesh and one part
// list. Field names in the JSON form are a compatibility contract.
type Report struct {
	VM Scalar `json:"V_M"` // original mesh volume
	VC Scalar `json:"V_C"` // summed collider volume
	AM Scalar `json:"A_M"` // original mesh surface area
	AC Scalar `json:"A_C"` // summed collider surface area

	// VolumeRelativeDiff is |V_C - V_M| / V_M, undefined when V_M is 0.
	VolumeRelativeDiff Scalar `json:"volume_relative_diff"`

	// SurfaceAreaRatio is A_C / A_M, undefined when A_M is 0.
	SurfaceAreaRatio Scalar `json:"surface_area_ratio"`

	// BBoxSpanRatios is the per-axis collider/original span ratio.
	BBoxSpanRatios Vec `json:"bbox_span_ratios"`

	// BBoxVolumeRatio compares the products of the per-axis spans.
	BBoxVolumeRatio Scalar `json:"bbox_volume_ratio"`

	BBoxSpansOriginal Vec `json:"bbox_spans_original"`
	BBoxSpansCollider Vec `json:"bbox_spans_collider"`
}

// Compute builds the fidelity report for a mesh and its collider parts.
// Every division is performed component-wise without guarding: a zero
// denominator yields NaN or infinity, which the report serializes as
// null. Nothing here raises or aborts.
func Compute(mesh *geom.Mesh, parts []*geom.Mesh) Report {
	vm := mesh.SignedVolume()
	am := mesh.SurfaceArea()

	var vc, ac float64
	for _, p := range parts {
		vc += p.SignedVolume()
		ac += p.SurfaceArea()
	}

	spansM := spans(mesh.Bounds())
	spansC := colliderSpans(parts)

	var ratios Vec
	for i := 0; i < 3; i++ {
		ratios[i] = Scalar(spansC[i] / spansM[i])
	}

	diff := vc - vm
	if diff < 0 {
		diff = -diff
	}

	return Report{
		VM:                 Scalar(vm),
		VC:                 Scalar(vc),
		AM:                 Scalar(am),
		AC:                 Scalar(ac),
		VolumeRelativeDiff: Scalar(diff / vm),
		SurfaceAreaRatio:   Scalar(ac / am),
		BBoxSpanRatios:     ratios,
		BBoxVolumeRatio:    Scalar((spansC[0] * spansC[1] * spansC[2]) / (spansM[0] * spansM[1] * spansM[2])),
		BBoxSpansOriginal:  toVec(spansM),
		BBoxSpansCollider:  toVec(spansC),
	}
}

// spans returns the per-axis extent of a bounding box.
func spans(bb vec3d.Box) [3]float64 {
	return [3]float64{
		bb.Max[0] - bb.Min[0],
		bb.Max[1] - bb.Min[1],
		bb.Max[2] - bb.Min[2],
	}
}

// colliderSpans pools every vertex of every part into one min/max pass.
// This is deliberately not a union of per-part boxes; pooling globally is
// the contract and a per-part union would generally differ.
func colliderSpans(parts []*geom.Mesh) [3]float64 {
	bb := vec3d.MinBox
	seen := false
	for _, p := range parts {
		for i := range p.Vertices {
			bb.Extend(&p.Vertices[i])
			seen = true
		}
	}
	if !seen {
		return [3]float64{}
	}
	return spans(bb)
}

func toVec(v [3]float64) Vec {
	return Vec{Scalar(v[0]), Scalar(v[1]), Scalar(v[2])}
}

// WriteJSON encodes the report to w.
func WriteJSON(w io.Writer, r Report) error {
	return json.NewEncoder(w).Encode(r)
}
