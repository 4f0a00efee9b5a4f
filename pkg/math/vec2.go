// Package math provides the vector and matrix types used by the terrain engine.
package math

import "math"

// Vec2 is a 2D vector. Terrain regions use X for local X and Y for local Z.
type Vec2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Midpoint returns the point halfway between v and other.
// The result does not depend on argument order.
func (v Vec2) Midpoint(other Vec2) Vec2 {
	return Vec2{(v.X + other.X) * 0.5, (v.Y + other.Y) * 0.5}
}

// XZ lifts v onto the horizontal plane at height y.
func (v Vec2) XZ(y float32) Vec3 {
	return Vec3{v.X, y, v.Y}
}
