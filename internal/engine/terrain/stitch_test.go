package terrain

import (
	"fmt"
	"testing"
)

func TestBuildStitchStrip(t *testing.T) {
	tiers := []int{2, 3, 8, 18}
	for _, a := range tiers {
		for _, b := range tiers {
			t.Run(fmt.Sprintf("%d_%d", a, b), func(t *testing.T) {
				m := BuildStitchStrip(a, b)

				if len(m.Vertices) != a+b {
					t.Errorf("expected %d vertices, got %d", a+b, len(m.Vertices))
				}
				if m.TriangleCount() != a+b-2 {
					t.Errorf("expected %d triangles, got %d", a+b-2, m.TriangleCount())
				}

				// Every boundary vertex is a triangle corner: no T-junctions.
				used := make([]bool, len(m.Vertices))
				for _, idx := range m.Indices {
					used[idx] = true
				}
				for i, u := range used {
					if !u {
						t.Errorf("vertex %d %v unused", i, m.Vertices[i].Position)
					}
				}

				// Counter-clockwise triangles with total area 1 cover the
				// unit square exactly once.
				var area float32
				for i := 0; i < len(m.Indices); i += 3 {
					n := triangleNormalY(m, i)
					if n <= 0 {
						t.Errorf("triangle %d faces down", i/3)
					}
					area += n / 2
				}
				if area < 0.9999 || area > 1.0001 {
					t.Errorf("expected covered area 1, got %v", area)
				}
			})
		}
	}
}

func TestBuildStitchStripClosesAtEndpoints(t *testing.T) {
	m := BuildStitchStrip(3, 8)

	first := m.Indices[:3]
	last := m.Indices[len(m.Indices)-3:]

	// Bottom endpoints are left 0 and right 0 (index 3).
	if !containsIndex(first, 0) || !containsIndex(first, 3) {
		t.Errorf("first triangle %v should use both bottom endpoints", first)
	}
	// Top endpoints are left 2 and right 7 (index 10).
	if !containsIndex(last, 2) || !containsIndex(last, 10) {
		t.Errorf("last triangle %v should use both top endpoints", last)
	}
}

func TestBuildStitchStripPanicsOnDegenerateTier(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for tier 1")
		}
	}()
	BuildStitchStrip(3, 1)
}

func containsIndex(s []uint32, v uint32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
