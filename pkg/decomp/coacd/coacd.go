//go:build coacd

// Package coacd binds the CoACD approximate convex decomposition library
// (https://github.com/SarahWeiii/CoACD) through its C interface. The
// library's own extrusion and approximation switches stay disabled here;
// box conversion and margin scaling are applied by pkg/approx so they
// behave identically for every backend.
//
// This package requires libcoacd to be installed.
// Build with: go build -tags=coacd
package coacd

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lcoacd

#include <stdlib.h>
#include <stdint.h>

typedef struct {
	double*  vertices_ptr;
	uint64_t vertices_count;
	int32_t* triangles_ptr;
	uint64_t triangles_count;
} CoACD_Mesh;

typedef struct {
	CoACD_Mesh* meshes_ptr;
	uint64_t    meshes_count;
} CoACD_MeshArray;

extern CoACD_MeshArray CoACD_run(const CoACD_Mesh* input, double threshold,
	int max_convex_hull, int preprocess_mode, int prep_resolution,
	int sample_resolution, int mcts_nodes, int mcts_iteration,
	int mcts_max_depth, int pca, int merge, int decimate,
	int max_ch_vertex, int extrude, double extrude_margin,
	int apx_mode, unsigned int seed);
extern void CoACD_freeMeshArray(CoACD_MeshArray arr);
extern void CoACD_setLogLevel(const char* level);
*/
import "C"

import (
	"context"
	"fmt"
	"unsafe"

	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/chamferlabs/collidergen/pkg/decomp"
	"github.com/chamferlabs/collidergen/pkg/geom"
)

// Compile-time interface check.
var _ decomp.Decomposer = (*Backend)(nil)

// Backend runs CoACD in-process.
type Backend struct{}

// New returns the CoACD-backed decomposer.
func New() (decomp.Decomposer, error) {
	lvl := C.CString("error")
	defer C.free(unsafe.Pointer(lvl))
	C.CoACD_setLogLevel(lvl)
	return &Backend{}, nil
}

// Decompose runs the full CoACD search as one opaque synchronous call.
// The context is checked once up front; the library itself cannot be
// interrupted mid-run.
func (b *Backend) Decompose(ctx context.Context, mesh *geom.Mesh, opts decomp.Options) ([]decomp.RawPart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if mesh.IsEmpty() || mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("coacd: input mesh has no geometry")
	}

	verts := make([]C.double, 0, mesh.VertexCount()*3)
	for _, v := range mesh.Vertices {
		verts = append(verts, C.double(v[0]), C.double(v[1]), C.double(v[2]))
	}
	tris := make([]C.int32_t, 0, mesh.TriangleCount()*3)
	for _, f := range mesh.Faces {
		tris = append(tris, C.int32_t(f[0]), C.int32_t(f[1]), C.int32_t(f[2]))
	}

	input := C.CoACD_Mesh{
		vertices_ptr:    &verts[0],
		vertices_count:  C.uint64_t(mesh.VertexCount()),
		triangles_ptr:   &tris[0],
		triangles_count: C.uint64_t(mesh.TriangleCount()),
	}

	pca := C.int(0)
	if opts.PCA {
		pca = 1
	}

	result := C.CoACD_run(&input,
		C.double(opts.Threshold),
		C.int(opts.MaxConvexHull),
		0, // preprocess_mode auto
		C.int(opts.PreprocessResolution),
		C.int(opts.Resolution),
		C.int(opts.MCTSNodes),
		C.int(opts.MCTSIterations),
		C.int(opts.MCTSMaxDepth),
		pca,
		1,   // merge
		0,   // decimate
		256, // max_ch_vertex
		0,   // extrude: margins are applied by pkg/approx
		0,
		0, // apx_mode ch: box conversion is applied by pkg/approx
		0, // seed
	)
	defer C.CoACD_freeMeshArray(result)

	count := int(result.meshes_count)
	parts := make([]decomp.RawPart, 0, count)
	cMeshes := unsafe.Slice(result.meshes_ptr, count)
	for i := 0; i < count; i++ {
		parts = append(parts, decomp.FromSource(decomp.MeshPart{Mesh: copyMesh(&cMeshes[i])}))
	}
	return parts, nil
}

// copyMesh copies one result hull out of C memory.
func copyMesh(cm *C.CoACD_Mesh) *geom.Mesh {
	nv := int(cm.vertices_count)
	nt := int(cm.triangles_count)
	cVerts := unsafe.Slice(cm.vertices_ptr, nv*3)
	cTris := unsafe.Slice(cm.triangles_ptr, nt*3)

	m := &geom.Mesh{
		Vertices: make([]vec3d.T, nv),
		Faces:    make([][3]int32, nt),
	}
	for i := 0; i < nv; i++ {
		m.Vertices[i] = vec3d.T{
			float64(cVerts[i*3]),
			float64(cVerts[i*3+1]),
			float64(cVerts[i*3+2]),
		}
	}
	for i := 0; i < nt; i++ {
		m.Faces[i] = [3]int32{
			int32(cTris[i*3]),
			int32(cTris[i*3+1]),
			int32(cTris[i*3+2]),
		}
	}
	return m
}
