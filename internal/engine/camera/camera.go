// Package camera provides the viewer camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/seamless-terrain/pkg/math"
)

// OrbitCamera circles a centre point at a fixed height, looking at a point
// on the ground ahead of it.
type OrbitCamera struct {
	Center math.Vec3

	Radius float32 // horizontal distance from Center
	Height float32 // height above Center
	Yaw    float32 // radians, 0 looks along -Z from +Z

	// Lead is how far ahead along the orbit the camera looks, in radians.
	Lead float32

	// Speed is the yaw rate in radians per second.
	Speed float32
}

// NewOrbitCamera creates an orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Radius: 200,
		Height: 40,
		Lead:   0.5,
		Speed:  0.2,
	}
}

// FitToTerrain centres the orbit on a terrain of the given size lying on
// the XZ plane at the origin. radius is a fraction of the half-size.
func (c *OrbitCamera) FitToTerrain(size math.Vec2, radius, height float32) {
	c.Center = math.Vec3{X: size.X / 2, Z: size.Y / 2}
	half := size.X / 2
	if size.Y < size.X {
		half = size.Y / 2
	}
	c.Radius = half * radius
	c.Height = height
}

// SetSpeedDegrees sets the orbit rate in degrees per second.
func (c *OrbitCamera) SetSpeedDegrees(deg float32) {
	c.Speed = deg * gomath.Pi / 180
}

// Advance moves the camera along its orbit by dt seconds.
func (c *OrbitCamera) Advance(dt float32) {
	c.Yaw += c.Speed * dt
	if c.Yaw > 2*gomath.Pi {
		c.Yaw -= 2 * gomath.Pi
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.orbitPoint(c.Yaw, c.Height)
}

// Target returns the ground point the camera looks at.
func (c *OrbitCamera) Target() math.Vec3 {
	return c.orbitPoint(c.Yaw+c.Lead, 0)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Target(), up)
}

func (c *OrbitCamera) orbitPoint(yaw, height float32) math.Vec3 {
	sin, cos := gomath.Sincos(float64(yaw))
	return math.Vec3{
		X: c.Center.X + c.Radius*float32(sin),
		Y: c.Center.Y + height,
		Z: c.Center.Z + c.Radius*float32(cos),
	}
}
