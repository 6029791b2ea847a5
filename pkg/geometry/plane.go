package geometry

import (
	"math"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/material"
)

// ParallelEpsilon is the |d·n| below which a ray counts as parallel to a plane
const ParallelEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3      // A point on the plane
	Normal   core.Vec3      // Unit normal
	Material material.Phong // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Phong) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (Hit, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < ParallelEpsilon {
		return Hit{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < 0 {
		return Hit{}, false
	}

	// The normal is fixed regardless of the side the ray approaches from
	return Hit{T: t, Normal: p.Normal}, true
}

// PositionAt returns the point at parameter t along the ray
func (p *Plane) PositionAt(ray core.Ray, t float64) core.Vec3 {
	return ray.At(t)
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() material.Phong {
	return p.Material
}
