package terrain

import (
	"testing"

	"github.com/Faultbox/seamless-terrain/pkg/math"
)

// submission is one recorded Submit call.
type submission struct {
	mesh       MeshID
	material   Material
	transforms []math.Mat4
	count      int
}

// recorder is a Submitter that copies every call.
type recorder struct {
	calls []submission
}

func (r *recorder) Submit(mesh MeshID, material Material, transforms []math.Mat4, count int) {
	r.calls = append(r.calls, submission{
		mesh:       mesh,
		material:   material,
		transforms: append([]math.Mat4(nil), transforms...),
		count:      count,
	})
}

func (r *recorder) instances() int {
	n := 0
	for _, c := range r.calls {
		n += c.count
	}
	return n
}

// traversal wires a library, batcher and subdivider and records patches.
type traversal struct {
	lib     *Library
	batch   *Batcher
	sub     *Subdivider
	patches []Patch
}

func newTraversal(t *testing.T, precision float32, tiers ...int) *traversal {
	t.Helper()
	lib := mustLibrary(t, tiers...)
	tr := &traversal{lib: lib, batch: NewBatcher(lib.MeshCount(), 1<<14)}
	tr.sub = NewSubdivider(lib, tr.batch)
	tr.sub.Precision = precision
	tr.sub.OnPatch = func(p Patch) { tr.patches = append(tr.patches, p) }
	return tr
}

func (tr *traversal) run(view math.Vec3, size math.Vec2, depth int) *recorder {
	tr.patches = tr.patches[:0]
	tr.batch.Clear()
	tr.sub.Traverse(view, size, depth)
	rec := &recorder{}
	tr.batch.Flush(rec)
	return rec
}
