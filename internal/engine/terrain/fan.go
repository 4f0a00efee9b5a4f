package terrain

import "fmt"

// BuildFanTile builds the fan tile for a tier: a right-angled triangular
// grid with its apex at the origin, legs of length 1 along +X and +Z and
// tier vertices along the hypotenuse. Four copies rotated in 90 degree
// steps around the apex cover a square, so every patch shares one centre
// vertex no matter which tier each quadrant uses.
//
// Row r holds r+1 vertices, giving tier*(tier+1)/2 vertices and
// (tier-1)^2 counter-clockwise (seen from +Y) triangles.
func BuildFanTile(tier int) *Mesh {
	if tier < 2 {
		panic(fmt.Sprintf("terrain: fan tile tier %d < 2", tier))
	}

	steps := float32(tier - 1)
	vertices := make([]Vertex, 0, tier*(tier+1)/2)
	for r := 0; r < tier; r++ {
		for c := 0; c <= r; c++ {
			x := float32(r-c) / steps
			z := float32(c) / steps
			vertices = append(vertices, Vertex{
				Position: [3]float32{x, 0, z},
				TexCoord: [2]float32{x, z},
			})
		}
	}

	indices := make([]uint32, 0, 3*(tier-1)*(tier-1))
	for r := 0; r < tier-1; r++ {
		for c := 0; c <= r; c++ {
			indices = append(indices,
				fanIndex(r, c), fanIndex(r+1, c+1), fanIndex(r+1, c))
			if c < r {
				indices = append(indices,
					fanIndex(r, c), fanIndex(r, c+1), fanIndex(r+1, c+1))
			}
		}
	}

	return &Mesh{
		Name:     fmt.Sprintf("Fan_%d", tier),
		Vertices: vertices,
		Indices:  indices,
		Bounds:   computeBounds(vertices),
	}
}

// fanIndex maps row/column to the vertex index in a fan tile.
func fanIndex(r, c int) uint32 {
	return uint32(r*(r+1)/2 + c)
}
