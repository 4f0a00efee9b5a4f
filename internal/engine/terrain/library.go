package terrain

import (
	"fmt"
	gomath "math"
)

// Library holds one fan tile per configured tier and the full tier x tier
// matrix of stitch strips. It is built once and read-only afterwards, so it
// may be shared between goroutines.
type Library struct {
	tiers    []int
	fans     []*Mesh
	stitches [][]*Mesh
	meshes   []*Mesh
}

// NewLibrary validates the tier list and builds every mesh.
// Tiers must be non-empty, each at least 2, and strictly ascending.
func NewLibrary(tiers []int) (*Library, error) {
	if err := validateTiers(tiers); err != nil {
		return nil, err
	}

	n := len(tiers)
	lib := &Library{
		tiers:    append([]int(nil), tiers...),
		fans:     make([]*Mesh, n),
		stitches: make([][]*Mesh, n),
		meshes:   make([]*Mesh, 0, n+n*n),
	}

	for i, tier := range lib.tiers {
		lib.fans[i] = lib.add(BuildFanTile(tier))
	}
	for i, origin := range lib.tiers {
		lib.stitches[i] = make([]*Mesh, n)
		for j, target := range lib.tiers {
			lib.stitches[i][j] = lib.add(BuildStitchStrip(origin, target))
		}
	}

	return lib, nil
}

func (l *Library) add(m *Mesh) *Mesh {
	m.ID = MeshID(len(l.meshes))
	l.meshes = append(l.meshes, m)
	return m
}

func validateTiers(tiers []int) error {
	if len(tiers) == 0 {
		return ErrNoResolutions
	}
	for i, tier := range tiers {
		if tier < 2 {
			return fmt.Errorf("%w: %d", ErrInvalidResolution, tier)
		}
		if i > 0 && tier <= tiers[i-1] {
			return fmt.Errorf("%w: %d after %d", ErrUnsortedResolutions, tier, tiers[i-1])
		}
	}
	return nil
}

// Tiers returns a copy of the configured tiers.
func (l *Library) Tiers() []int {
	return append([]int(nil), l.tiers...)
}

// MaxResolution returns the finest tier.
func (l *Library) MaxResolution() int {
	return l.tiers[len(l.tiers)-1]
}

// TierIndex returns the position of tier in the tier list, or -1.
func (l *Library) TierIndex(tier int) int {
	for i, t := range l.tiers {
		if t == tier {
			return i
		}
	}
	return -1
}

// NearestTier rounds resolution to the nearest integer (half to even) and
// returns the configured tier closest to it. Only a strictly smaller
// distance replaces the current best, so ties go to the lower tier.
func (l *Library) NearestTier(resolution float32) int {
	return l.tiers[l.nearestIndex(resolution)]
}

// nearestIndex is NearestTier returning the tier's index.
func (l *Library) nearestIndex(resolution float32) int {
	r := float64(resolution)
	switch {
	case gomath.IsNaN(r):
		return 0
	case gomath.IsInf(r, 1):
		return len(l.tiers) - 1
	}

	rounded := gomath.RoundToEven(r)
	nearest := 0
	best := gomath.Abs(float64(l.tiers[0]) - rounded)
	for i := 1; i < len(l.tiers); i++ {
		if d := gomath.Abs(float64(l.tiers[i]) - rounded); d < best {
			nearest, best = i, d
		}
	}
	return nearest
}

// FanTile returns the fan tile for tier, or nil for an unknown tier.
func (l *Library) FanTile(tier int) *Mesh {
	i := l.TierIndex(tier)
	if i < 0 {
		return nil
	}
	return l.fans[i]
}

// Stitch returns the strip joining an origin tier to a target tier,
// or nil if either is unknown.
func (l *Library) Stitch(origin, target int) *Mesh {
	i, j := l.TierIndex(origin), l.TierIndex(target)
	if i < 0 || j < 0 {
		return nil
	}
	return l.stitches[i][j]
}

// Meshes returns every mesh indexed by MeshID.
func (l *Library) Meshes() []*Mesh {
	return l.meshes
}

// MeshCount returns the number of meshes in the library.
func (l *Library) MeshCount() int {
	return len(l.meshes)
}
