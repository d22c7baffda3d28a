package decomp

import (
	"fmt"
	"strings"
)

// UnsupportedPartShapeError reports a decomposition result item that
// matches none of the shapes Normalize accepts, or a mapping that lacks a
// resolvable face key. It is fatal: the pipeline aborts rather than skip
// malformed parts, since a collider set with missing pieces is worse than
// no collider set.
type UnsupportedPartShapeError struct {
	Type string   // Go type or shape description of the offending value
	Keys []string // present keys when the value was a mapping
}

func (e *UnsupportedPartShapeError) Error() string {
	if len(e.Keys) > 0 {
		return fmt.Sprintf("unsupported part shape: mapping with keys [%s]", strings.Join(e.Keys, " "))
	}
	return fmt.Sprintf("unsupported part shape: %s", e.Type)
}
