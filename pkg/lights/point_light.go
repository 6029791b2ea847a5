package lights

import "github.com/df07/whitted-raytracer/pkg/core"

// PointLight is an infinitely small light with no distance attenuation
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3 // Linear RGB, non-negative
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit vector from point toward the light
func (l PointLight) DirectionFrom(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}
