package terrain

import (
	"fmt"
	gomath "math"
	"slices"

	"github.com/Faultbox/seamless-terrain/pkg/math"
)

// MaxDepthLimit bounds the recursion depth a configuration may ask for.
const MaxDepthLimit = 16

// Settings configures the tessellation engine.
type Settings struct {
	Resolutions         []int     `yaml:"resolutions"`
	Precision           float32   `yaml:"precision"`
	Size                math.Vec2 `yaml:"size"`
	MaxDepth            int       `yaml:"max_depth"`
	MaxInstancesPerMesh int       `yaml:"max_instances_per_mesh"`
	Stitching           bool      `yaml:"stitching"`
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		Resolutions:         []int{3, 8, 18},
		Precision:           1,
		Size:                math.Vec2{X: 1000, Y: 1000},
		MaxDepth:            8,
		MaxInstancesPerMesh: DefaultMaxInstances,
	}
}

// Validate reports the first configuration error, if any.
func (s Settings) Validate() error {
	if err := validateTiers(s.Resolutions); err != nil {
		return err
	}
	if !positiveFinite(s.Precision) {
		return fmt.Errorf("%w: %v", ErrInvalidPrecision, s.Precision)
	}
	if !positiveFinite(s.Size.X) || !positiveFinite(s.Size.Y) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, s.Size.X, s.Size.Y)
	}
	if s.MaxDepth < 1 || s.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidDepth, s.MaxDepth, MaxDepthLimit)
	}
	if s.MaxInstancesPerMesh < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, s.MaxInstancesPerMesh)
	}
	return nil
}

// SharesMeshes reports whether s builds the same tile meshes, with the same
// MeshIDs and per-mesh instance cap, as other. Precision, depth, size and
// stitching only change what gets queued.
func (s Settings) SharesMeshes(other Settings) bool {
	return slices.Equal(s.Resolutions, other.Resolutions) &&
		s.MaxInstancesPerMesh == other.MaxInstancesPerMesh
}

// positiveFinite rejects zero, negatives, NaN and both infinities.
func positiveFinite(v float32) bool {
	return v > 0 && !gomath.IsInf(float64(v), 1)
}
