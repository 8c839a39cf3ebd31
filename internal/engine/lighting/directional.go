// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/icosphere/pkg/math"
)

// DirectionalLight is an infinitely distant light. Direction is the way
// the light travels, so a surface facing -Direction is fully lit.
type DirectionalLight struct {
	Direction math.Vec3
	Color     [3]float32
}

// NewDirectional returns a light with a normalized direction.
func NewDirectional(direction math.Vec3, color [3]float32) DirectionalLight {
	return DirectionalLight{
		Direction: direction.Normalize(),
		Color:     color,
	}
}

// DefaultDirectional is a white light travelling along normalize(1, 1, 0).
func DefaultDirectional() DirectionalLight {
	return NewDirectional(math.Vec3{X: 1, Y: 1, Z: 0}, [3]float32{1, 1, 1})
}

// Diffuse returns the Lambert factor max(dot(N, -L), 0) for a unit normal.
func (l DirectionalLight) Diffuse(normal math.Vec3) float32 {
	return math32.Max(normal.Dot(l.Direction.Scale(-1)), 0)
}

// Shade mirrors the sphere fragment shader on the CPU.
func (l DirectionalLight) Shade(normal math.Vec3, objectColor [3]float32) [3]float32 {
	d := l.Diffuse(normal)
	return [3]float32{
		d * l.Color[0] * objectColor[0],
		d * l.Color[1] * objectColor[1],
		d * l.Color[2] * objectColor[2],
	}
}

// DirectionFromAngles converts azimuth (around Y) and elevation (above
// the XZ plane) in degrees to the unit vector pointing at the light.
func DirectionFromAngles(azimuth, elevation float32) math.Vec3 {
	az := math.Radians(azimuth)
	el := math.Radians(elevation)
	return math.Vec3{
		X: math32.Cos(el) * math32.Sin(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Cos(az),
	}
}

// Angles is the inverse of DirectionFromAngles for the vector pointing at
// the light, i.e. -Direction.
func (l DirectionalLight) Angles() (azimuth, elevation float32) {
	toward := l.Direction.Scale(-1).Normalize()
	elevation = math32.Asin(math32.Max(-1, math32.Min(1, toward.Y))) * 180 / math32.Pi
	azimuth = math32.Atan2(toward.X, toward.Z) * 180 / math32.Pi
	return azimuth, elevation
}

// FromAngles builds a light shining from the given azimuth and elevation.
func FromAngles(azimuth, elevation float32, color [3]float32) DirectionalLight {
	return NewDirectional(DirectionFromAngles(azimuth, elevation).Scale(-1), color)
}
