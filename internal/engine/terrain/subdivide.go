package terrain

import (
	"github.com/Faultbox/seamless-terrain/pkg/math"
)

// MaxEdgeError is the error reported for a degenerate segment: zero length,
// or a viewpoint sitting on its midpoint. It is finite and above the split
// threshold, so such regions split until the depth budget runs out.
const MaxEdgeError = 1e6

// minViewDistance is the distance below which the viewpoint counts as
// sitting on a segment midpoint.
const minViewDistance = 1e-6

// Where the two legs of a fan tile land for each side, in units of the
// patch half-size. The tile's +X leg goes to the first corner and its +Z leg
// to the second, which turns the hypotenuse onto the named side. This is
// the tile yawed by -45, 45, 135 or -135 degrees and scaled by size/sqrt2,
// written out so every matrix entry is an exact half-size.
var sideLegs = [4][2]math.Vec2{
	North: {{X: 1, Y: 1}, {X: -1, Y: 1}},
	East:  {{X: 1, Y: -1}, {X: 1, Y: 1}},
	South: {{X: -1, Y: -1}, {X: 1, Y: -1}},
	West:  {{X: -1, Y: 1}, {X: -1, Y: -1}},
}

// sideTransform places a tile for side of the patch centred at center.
// Both columns and the translation are sums of the patch's own corner
// coordinates, so neighbouring patches put shared corners on the same
// float32 value.
func sideTransform(side Side, center, half math.Vec2) math.Mat4 {
	u, v := sideLegs[side][0], sideLegs[side][1]
	return math.Mat4{
		u.X * half.X, 0, u.Y * half.Y, 0,
		0, 1, 0, 0,
		v.X * half.X, 0, v.Y * half.Y, 0,
		center.X, 0, center.Y, 1,
	}
}

// SegmentError estimates the projected size of the segment start-end seen
// from view: precision * length / distance(view, midpoint). The segment
// lies on the y = 0 plane of the terrain's local space. The midpoint is
// computed symmetrically, so both regions sharing a segment get the exact
// same value regardless of the direction they walk it in.
func SegmentError(view math.Vec3, start, end math.Vec2, precision float32) float32 {
	length := start.Distance(end)
	dist := view.Distance(start.Midpoint(end).XZ(0))
	if length == 0 || dist < minViewDistance {
		return MaxEdgeError
	}
	return precision * length / dist
}

// Subdivider runs the recursive quadtree over a square terrain and queues
// four fan tiles for every terminal patch.
type Subdivider struct {
	// Precision scales every error estimate; higher means denser meshes.
	Precision float32

	// Stitching also queues the corner stitch strips of each patch.
	Stitching bool

	// OnPatch, if set, observes every emitted patch.
	OnPatch func(Patch)

	lib   *Library
	batch *Batcher

	patches  int
	maxLevel int
}

// NewSubdivider creates a subdivider drawing tiles from lib into batch.
func NewSubdivider(lib *Library, batch *Batcher) *Subdivider {
	return &Subdivider{
		Precision: 1,
		lib:       lib,
		batch:     batch,
	}
}

// Traverse tessellates the region [0, size] seen from the local-space
// viewpoint view, splitting at most maxDepth times.
func (s *Subdivider) Traverse(view math.Vec3, size math.Vec2, maxDepth int) {
	s.patches = 0
	s.maxLevel = 0

	c1 := math.Vec2{}
	c2 := math.Vec2{Y: size.Y}
	c3 := size
	c4 := math.Vec2{X: size.X}

	var eps EdgeErrors
	eps[North] = SegmentError(view, c2, c3, s.Precision)
	eps[East] = SegmentError(view, c3, c4, s.Precision)
	eps[South] = SegmentError(view, c4, c1, s.Precision)
	eps[West] = SegmentError(view, c1, c2, s.Precision)

	s.subdivide(view, math.Vec2{}, size, eps, maxDepth, 0)
}

// Patches returns the number of patches emitted by the last Traverse.
func (s *Subdivider) Patches() int {
	return s.patches
}

// MaxDepthReached returns the deepest level emitted by the last Traverse.
func (s *Subdivider) MaxDepthReached() int {
	return s.maxLevel
}

// subdivide either emits the region or splits it into quadrants:
//
//	+---+---+
//	| a | b |
//	+---+---+
//	| c | d |
//	+---+---+
func (s *Subdivider) subdivide(view math.Vec3, pos, size math.Vec2, eps EdgeErrors, remaining, level int) {
	if remaining <= 0 || eps.Max() <= 1 {
		s.emit(pos, size, eps, level)
		return
	}

	half := size.Scale(0.5)
	center := pos.Add(half)

	ab := SegmentError(view, center, center.Add(math.Vec2{Y: half.Y}), s.Precision)
	dc := SegmentError(view, center, center.Sub(math.Vec2{Y: half.Y}), s.Precision)
	bd := SegmentError(view, center, center.Add(math.Vec2{X: half.X}), s.Precision)
	ca := SegmentError(view, center, center.Sub(math.Vec2{X: half.X}), s.Precision)

	// A parent side that already missed the threshold keeps its full error
	// on both children instead of being halved.
	var inherited EdgeErrors
	for side, e := range eps {
		inherited[side] = e * 0.5
		if e > 1 {
			inherited[side] *= 2
		}
	}

	a := EdgeErrors{North: inherited[North], East: ab, South: ca, West: inherited[West]}
	b := EdgeErrors{North: inherited[North], East: inherited[East], South: bd, West: ab}
	c := EdgeErrors{North: ca, East: dc, South: inherited[South], West: inherited[West]}
	d := EdgeErrors{North: bd, East: inherited[East], South: inherited[South], West: dc}

	s.subdivide(view, math.Vec2{X: pos.X, Y: center.Y}, half, a, remaining-1, level+1)
	s.subdivide(view, center, half, b, remaining-1, level+1)
	s.subdivide(view, pos, half, c, remaining-1, level+1)
	s.subdivide(view, math.Vec2{X: center.X, Y: pos.Y}, half, d, remaining-1, level+1)
}

func (s *Subdivider) emit(pos, size math.Vec2, eps EdgeErrors, level int) {
	maxRes := float32(s.lib.MaxResolution())

	var tiers [4]int
	for side, e := range eps {
		tiers[side] = s.lib.nearestIndex(e * maxRes)
	}

	half := size.Scale(0.5)
	center := pos.Add(half)

	var placed [4]math.Mat4
	for side := range placed {
		placed[side] = sideTransform(Side(side), center, half)
	}

	for _, side := range [4]Side{West, North, East, South} {
		s.batch.Queue(s.lib.fans[tiers[side]].ID, placed[side])
	}

	if s.Stitching {
		// Corner strips, each placed like the fan of the side it starts from.
		s.batch.Queue(s.lib.stitches[tiers[West]][tiers[North]].ID, placed[North])
		s.batch.Queue(s.lib.stitches[tiers[North]][tiers[East]].ID, placed[East])
		s.batch.Queue(s.lib.stitches[tiers[East]][tiers[South]].ID, placed[South])
		s.batch.Queue(s.lib.stitches[tiers[South]][tiers[West]].ID, placed[West])
	}

	s.patches++
	if level > s.maxLevel {
		s.maxLevel = level
	}

	if s.OnPatch != nil {
		p := Patch{Position: pos, Size: size, Depth: level}
		for side, i := range tiers {
			p.Tiers[side] = s.lib.tiers[i]
		}
		s.OnPatch(p)
	}
}
