package metrics

import (
	"math"
	"strconv"
)

// Scalar is a float64 that survives JSON encoding when degenerate. JSON
// has no NaN or infinity, so undefined metrics (zero denominators) marshal
// as null instead of failing the whole report. Unmarshalling maps null
// back to NaN.
type Scalar float64

func (s Scalar) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Scalar(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*s = Scalar(f)
	return nil
}

// Defined reports whether the scalar holds a usable value.
func (s Scalar) Defined() bool {
	f := float64(s)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Vec is a per-axis triple of NaN-safe scalars.
type Vec [3]Scalar
