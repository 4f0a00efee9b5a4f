// Package terrain implements crack-free adaptive tessellation of a square
// terrain: a quadtree driven by a screen-space error metric picks a
// resolution tier for every patch edge, and patches are drawn as four
// instanced fan tiles from a precomputed tile library.
package terrain

import (
	"github.com/Faultbox/seamless-terrain/pkg/math"
)

// Vertex is a tile mesh vertex in tile-local space.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// MeshID indexes a mesh inside a Library. Fan tiles come first in tier
// order, followed by the stitch matrix in row-major order.
type MeshID int

// Mesh is an immutable triangle list shared by every instance drawn with it.
type Mesh struct {
	ID       MeshID
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Side names one edge of a square region.
type Side int

const (
	North Side = iota // +Z
	East              // +X
	South             // -Z
	West              // -X
)

var sideNames = [4]string{"north", "east", "south", "west"}

func (s Side) String() string {
	if s < North || s > West {
		return "invalid"
	}
	return sideNames[s]
}

// EdgeErrors holds one screen-space error estimate per side, indexed by Side.
type EdgeErrors [4]float32

// Max returns the largest of the four errors.
func (e EdgeErrors) Max() float32 {
	m := e[0]
	for _, v := range e[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Patch is a terminal quadtree region together with the tier chosen for
// each of its sides.
type Patch struct {
	Position math.Vec2
	Size     math.Vec2
	Depth    int
	Tiers    [4]int
}

// Center returns the region centre in local XZ.
func (p Patch) Center() math.Vec2 {
	return p.Position.Add(p.Size.Scale(0.5))
}

// Stats are per-frame diagnostics. They never affect what gets drawn.
type Stats struct {
	Patches         int `yaml:"patches"`
	Instances       int `yaml:"instances"`
	Dropped         int `yaml:"dropped"`
	MaxDepthReached int `yaml:"max_depth_reached"`
	Submissions     int `yaml:"submissions"`
}

func computeBounds(vertices []Vertex) Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			if v.Position[i] < b.Min[i] {
				b.Min[i] = v.Position[i]
			}
			if v.Position[i] > b.Max[i] {
				b.Max[i] = v.Position[i]
			}
		}
	}
	return b
}
