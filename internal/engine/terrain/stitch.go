package terrain

import "fmt"

// BuildStitchStrip builds a strip joining a boundary of originTier vertices
// (x = 0) to one of targetTier vertices (x = 1), both spanning z in [0, 1].
//
// The strip is triangulated greedily: from the current pair of boundary
// vertices it advances whichever side yields the shorter new diagonal,
// preferring the origin side on ties. Every boundary vertex is used, so the
// strip has no T-junctions; it holds originTier+targetTier-2 triangles, the
// first and last closing against the shared endpoints.
func BuildStitchStrip(originTier, targetTier int) *Mesh {
	if originTier < 2 || targetTier < 2 {
		panic(fmt.Sprintf("terrain: stitch strip tiers %d/%d < 2", originTier, targetTier))
	}

	vertices := make([]Vertex, 0, originTier+targetTier)
	for i := 0; i < originTier; i++ {
		z := float32(i) / float32(originTier-1)
		vertices = append(vertices, Vertex{Position: [3]float32{0, 0, z}, TexCoord: [2]float32{0, z}})
	}
	for j := 0; j < targetTier; j++ {
		z := float32(j) / float32(targetTier-1)
		vertices = append(vertices, Vertex{Position: [3]float32{1, 0, z}, TexCoord: [2]float32{1, z}})
	}

	left := func(i int) uint32 { return uint32(i) }
	right := func(j int) uint32 { return uint32(originTier + j) }

	indices := make([]uint32, 0, 3*(originTier+targetTier-2))
	i, j := 0, 0
	for i < originTier-1 || j < targetTier-1 {
		advanceLeft := j == targetTier-1
		if i < originTier-1 && j < targetTier-1 {
			dl := diagonal(vertices[left(i+1)], vertices[right(j)])
			dr := diagonal(vertices[left(i)], vertices[right(j+1)])
			advanceLeft = dl <= dr
		}

		if advanceLeft {
			indices = append(indices, left(i), left(i+1), right(j))
			i++
		} else {
			indices = append(indices, left(i), right(j+1), right(j))
			j++
		}
	}

	return &Mesh{
		Name:     fmt.Sprintf("Stitch_%d_%d", originTier, targetTier),
		Vertices: vertices,
		Indices:  indices,
		Bounds:   computeBounds(vertices),
	}
}

// diagonal returns the squared XZ distance between two vertices.
func diagonal(a, b Vertex) float32 {
	dx := a.Position[0] - b.Position[0]
	dz := a.Position[2] - b.Position[2]
	return dx*dx + dz*dz
}
