// Package spatial holds the position, velocity and extent components shared
// by every simulation, and the bounding-volume math used for collisions.
package spatial

import "math"

// Vec2 is a 2D vector in world units. +Y is up.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Abs returns the component-wise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{abs(v.X), abs(v.Y)}
}

func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Clamp limits each component of v to [lo, hi].
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{clamp(v.X, lo.X, hi.X), clamp(v.Y, lo.Y, hi.Y)}
}

// Signum returns 1 for positive values and +0, -1 for negative values and
// -0, and NaN for NaN.
func Signum(f float32) float32 {
	switch {
	case math.IsNaN(float64(f)):
		return f
	case math.Signbit(float64(f)):
		return -1
	default:
		return 1
	}
}

func abs(f float32) float32 {
	return float32(math.Abs(float64(f)))
}

func clamp(f, lo, hi float32) float32 {
	return min(max(f, lo), hi)
}
