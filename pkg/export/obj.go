// Package export serializes collider part lists into interchange formats:
// a multi-object OBJ text stream and a flat JSON structure. Both writers
// are pure functions over the part list with no shared state.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/chamferlabs/collidergen/pkg/geom"
)

// ObjectName returns the OBJ object name for part idx out of total parts:
// "Collider_NN" with the index zero-padded to max(2, digits(total-1)).
func ObjectName(idx, total int) string {
	pad := 2
	if total > 0 {
		if digits := len(strconv.Itoa(total - 1)); digits > pad {
			pad = digits
		}
	}
	return fmt.Sprintf("Collider_%0*d", pad, idx)
}

// WriteOBJ renders the part list as one OBJ stream with one object block
// per part. Face indices are global and 1-based: each part's local indices
// are shifted by the running total of vertices written by all preceding
// parts, plus one for the OBJ convention. Downstream consumers depend on
// this exact offsetting.
func WriteOBJ(w io.Writer, parts []*geom.Mesh) error {
	bw := bufio.NewWriter(w)
	offset := int32(0)

	for idx, part := range parts {
		name := ObjectName(idx, len(parts))
		fmt.Fprintf(bw, "\n#\n# Object %s\n#\n\n", name)
		fmt.Fprintf(bw, "o %s\n", name)

		for _, v := range part.Vertices {
			bw.WriteString("v ")
			bw.WriteString(strconv.FormatFloat(v[0], 'g', -1, 64))
			bw.WriteByte(' ')
			bw.WriteString(strconv.FormatFloat(v[1], 'g', -1, 64))
			bw.WriteByte(' ')
			bw.WriteString(strconv.FormatFloat(v[2], 'g', -1, 64))
			bw.WriteByte('\n')
		}

		for _, f := range part.Faces {
			fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1+offset, f[1]+1+offset, f[2]+1+offset)
		}

		offset += int32(part.VertexCount())
	}

	return bw.Flush()
}
