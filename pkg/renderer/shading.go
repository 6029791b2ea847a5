package renderer

import (
	"math"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/geometry"
	"github.com/df07/whitted-raytracer/pkg/lights"
	"github.com/df07/whitted-raytracer/pkg/material"
)

const (
	// ShadowEpsilon offsets shadow ray origins along the normal to avoid self-intersection
	ShadowEpsilon = 1e-3

	// Gamma is the display gamma applied to averaged pixel colors
	Gamma = 2.2
)

// Shade computes Phong radiance at a hit point with a binary shadow test per light.
// Every light contributes ambient; diffuse and specular only when nothing occludes it.
func Shade(ray core.Ray, point, normal core.Vec3, mat material.Phong, sceneLights []lights.PointLight, surfaces []geometry.Surface) core.Vec3 {
	color := core.Vec3{}
	toView := ray.Direction.Negate().Normalize()
	shadowOrigin := point.Add(normal.Multiply(ShadowEpsilon))

	for _, light := range sceneLights {
		color = color.Add(mat.Ambient.MultiplyVec(light.Intensity))

		toLight := light.DirectionFrom(point)
		if occluded(core.NewRay(shadowOrigin, toLight), surfaces) {
			continue
		}

		diffuse := mat.Diffuse.MultiplyVec(light.Intensity).Multiply(math.Max(normal.Dot(toLight), 0))

		reflectDir := toLight.Negate().Reflect(normal)
		specularTerm := math.Pow(math.Max(toView.Dot(reflectDir), 0), mat.Shininess)
		specular := mat.Specular.MultiplyVec(light.Intensity).Multiply(specularTerm)

		color = color.Add(diffuse).Add(specular)
	}

	return color
}

// occluded reports whether any surface intersects the shadow ray.
// The test is not bounded by the light's distance.
func occluded(shadowRay core.Ray, surfaces []geometry.Surface) bool {
	for _, surface := range surfaces {
		if _, isHit := surface.Intersect(shadowRay); isHit {
			return true
		}
	}
	return false
}

// GammaCorrect maps a linear color to display encoding with exponent 1/Gamma
func GammaCorrect(color core.Vec3) core.Vec3 {
	return color.GammaCorrect(Gamma)
}
