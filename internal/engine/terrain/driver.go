package terrain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/seamless-terrain/pkg/math"
)

// Driver runs one tessellation pass per frame: it moves the camera into
// the terrain's local space, refills the batcher and flushes it to the host.
type Driver struct {
	log *zap.Logger

	settings Settings
	lib      *Library
	batch    *Batcher
	sub      *Subdivider

	localToWorld math.Mat4
	worldToLocal math.Mat4
	material     Material
}

// NewDriver validates s and builds the tile library and batch buffers.
// A nil logger discards output.
func NewDriver(s Settings, log *zap.Logger) (*Driver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Driver{
		log:          log,
		localToWorld: math.Identity(),
		worldToLocal: math.Identity(),
	}
	if err := d.Reconfigure(s); err != nil {
		return nil, err
	}
	return d, nil
}

// Reconfigure validates s and rebuilds the library and batcher. On error
// the previous configuration stays in effect.
func (d *Driver) Reconfigure(s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("terrain settings: %w", err)
	}

	lib, err := NewLibrary(s.Resolutions)
	if err != nil {
		return fmt.Errorf("tile library: %w", err)
	}

	batch := NewBatcher(lib.MeshCount(), s.MaxInstancesPerMesh)
	batch.SetBase(d.localToWorld)
	batch.SetMaterial(d.material)

	sub := NewSubdivider(lib, batch)
	sub.Precision = s.Precision
	sub.Stitching = s.Stitching
	if d.sub != nil {
		sub.OnPatch = d.sub.OnPatch
	}

	s.Resolutions = lib.Tiers()
	d.settings = s
	d.lib = lib
	d.batch = batch
	d.sub = sub

	d.log.Info("terrain configured",
		zap.Ints("resolutions", s.Resolutions),
		zap.Float32("precision", s.Precision),
		zap.Float32("size_x", s.Size.X),
		zap.Float32("size_z", s.Size.Y),
		zap.Int("max_depth", s.MaxDepth),
		zap.Int("meshes", lib.MeshCount()),
		zap.Int("instance_cap", s.MaxInstancesPerMesh),
		zap.Bool("stitching", s.Stitching),
	)
	return nil
}

// SetTransform places the terrain in the world.
func (d *Driver) SetTransform(localToWorld math.Mat4) {
	d.localToWorld = localToWorld
	d.worldToLocal = localToWorld.Inverse()
	d.batch.SetBase(localToWorld)
}

// SetPrecision changes the error scale used from the next frame on.
// Values that are not positive and finite are ignored.
func (d *Driver) SetPrecision(p float32) {
	if !positiveFinite(p) {
		d.log.Warn("ignoring invalid precision", zap.Float32("precision", p))
		return
	}
	d.settings.Precision = p
	d.sub.Precision = p
}

// SetMaterial sets the material handed to the Submitter.
func (d *Driver) SetMaterial(m Material) {
	d.material = m
	d.batch.SetMaterial(m)
}

// LocalViewpoint converts a world-space camera position into terrain space.
func (d *Driver) LocalViewpoint(camera math.Vec3) math.Vec3 {
	return d.worldToLocal.TransformPoint(camera)
}

// Frame tessellates the terrain for a camera at the given world position
// and submits the resulting instanced draws.
func (d *Driver) Frame(camera math.Vec3, sub Submitter) Stats {
	view := d.LocalViewpoint(camera)

	d.batch.Clear()
	d.sub.Traverse(view, d.settings.Size, d.settings.MaxDepth)

	stats := Stats{
		Patches:         d.sub.Patches(),
		Instances:       d.batch.Instances(),
		Dropped:         d.batch.Dropped(),
		MaxDepthReached: d.sub.MaxDepthReached(),
	}
	stats.Submissions = d.batch.Flush(sub)

	if stats.Dropped > 0 {
		d.log.Debug("instance cap reached",
			zap.Int("dropped", stats.Dropped),
			zap.Int("cap", d.batch.Capacity()),
		)
	}
	return stats
}

// Settings returns the active configuration.
func (d *Driver) Settings() Settings {
	return d.settings
}

// Library returns the active tile library.
func (d *Driver) Library() *Library {
	return d.lib
}

// Batcher returns the active batcher.
func (d *Driver) Batcher() *Batcher {
	return d.batch
}

// Subdivider returns the active subdivider.
func (d *Driver) Subdivider() *Subdivider {
	return d.sub
}
