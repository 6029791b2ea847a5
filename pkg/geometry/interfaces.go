package geometry

import (
	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/material"
)

// Hit contains information about a ray-surface intersection
type Hit struct {
	T      float64   // Parameter t along the ray, always > 0 for spheres and >= 0 for planes
	Normal core.Vec3 // Unit surface normal, not flipped toward the ray
}

// Surface is anything a ray can intersect. Each surface owns its material.
type Surface interface {
	Intersect(ray core.Ray) (Hit, bool)
	PositionAt(ray core.Ray, t float64) core.Vec3
	GetMaterial() material.Phong
}
