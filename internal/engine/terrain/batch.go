package terrain

import (
	"github.com/Faultbox/seamless-terrain/pkg/math"
)

// DefaultMaxInstances is the per-mesh instance cap of one instanced draw.
const DefaultMaxInstances = 1023

// Material is host-defined shading state. The batcher never inspects it and
// hands it back to the Submitter on flush.
type Material any

// Submitter issues one instanced draw. transforms holds exactly count
// world matrices and is only valid for the duration of the call.
type Submitter interface {
	Submit(mesh MeshID, material Material, transforms []math.Mat4, count int)
}

// SubmitFunc adapts a plain function to Submitter.
type SubmitFunc func(mesh MeshID, material Material, transforms []math.Mat4, count int)

// Submit calls f.
func (f SubmitFunc) Submit(mesh MeshID, material Material, transforms []math.Mat4, count int) {
	f(mesh, material, transforms, count)
}

type batchSlot struct {
	transforms []math.Mat4
	count      int
}

// Batcher collects per-mesh instance transforms over one traversal.
// All buffers are allocated up front; Clear and Queue never allocate.
type Batcher struct {
	slots    []batchSlot
	capacity int
	base     math.Mat4
	material Material
	dropped  int
}

// NewBatcher allocates capacity transforms for each of meshCount meshes.
func NewBatcher(meshCount, capacity int) *Batcher {
	b := &Batcher{
		slots:    make([]batchSlot, meshCount),
		capacity: capacity,
		base:     math.Identity(),
	}
	for i := range b.slots {
		b.slots[i].transforms = make([]math.Mat4, capacity)
	}
	return b
}

// SetBase sets the local-to-world transform applied to every queued instance.
func (b *Batcher) SetBase(m math.Mat4) {
	b.base = m
}

// SetMaterial sets the material passed to the Submitter on Flush.
func (b *Batcher) SetMaterial(m Material) {
	b.material = m
}

// Clear resets every instance count and the drop counter.
func (b *Batcher) Clear() {
	for i := range b.slots {
		b.slots[i].count = 0
	}
	b.dropped = 0
}

// Queue records one instance of mesh placed by local, a terrain-space
// matrix carrying its position, rotation and scale. When the mesh is at
// capacity the instance is dropped, counted, and false is returned.
func (b *Batcher) Queue(mesh MeshID, local math.Mat4) bool {
	s := &b.slots[mesh]
	if s.count >= b.capacity {
		b.dropped++
		return false
	}
	s.transforms[s.count] = b.base.Mul(local)
	s.count++
	return true
}

// Flush submits one draw per mesh with queued instances, in MeshID order,
// and resets the counts. It returns the number of submissions.
func (b *Batcher) Flush(sub Submitter) int {
	submissions := 0
	for i := range b.slots {
		s := &b.slots[i]
		if s.count == 0 {
			continue
		}
		sub.Submit(MeshID(i), b.material, s.transforms[:s.count], s.count)
		s.count = 0
		submissions++
	}
	return submissions
}

// Count returns the queued instance count of mesh.
func (b *Batcher) Count(mesh MeshID) int {
	return b.slots[mesh].count
}

// Instances returns the queued instance count over all meshes.
func (b *Batcher) Instances() int {
	n := 0
	for i := range b.slots {
		n += b.slots[i].count
	}
	return n
}

// Capacity returns the per-mesh instance cap.
func (b *Batcher) Capacity() int {
	return b.capacity
}

// Dropped returns how many instances were rejected since the last Clear.
func (b *Batcher) Dropped() int {
	return b.dropped
}
