package geometry

import (
	"math"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Phong
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Phong) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect tests if a ray intersects with the sphere.
// Ray directions are unit length, so the quadratic's a term is 1.
func (s *Sphere) Intersect(ray core.Ray) (Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := -halfB - sqrtD
	t1 := -halfB + sqrtD

	// Nearest positive root; both behind the origin is a miss
	var root float64
	switch {
	case t0 > 0:
		root = t0
	case t1 > 0:
		root = t1
	default:
		return Hit{}, false
	}

	// Outward normal, even when the ray starts inside
	normal := ray.At(root).Subtract(s.Center).Normalize()

	return Hit{T: root, Normal: normal}, true
}

// PositionAt returns the point at parameter t along the ray
func (s *Sphere) PositionAt(ray core.Ray, t float64) core.Vec3 {
	return ray.At(t)
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() material.Phong {
	return s.Material
}
