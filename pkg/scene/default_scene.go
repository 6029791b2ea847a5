package scene

import (
	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/material"
)

// groundMaterial is the grey ground plane: ambient 0.2, white diffuse, no specular
func groundMaterial() material.Phong {
	return material.NewMatte(core.Splat(0.2), core.Splat(1))
}

// NewDefaultScene creates the reference scene: a ground plane, three spheres and one white light
func NewDefaultScene() *Scene {
	s := NewScene("default")

	// Create materials
	red := material.NewMatte(core.NewVec3(0.2, 0, 0), core.NewVec3(1, 0, 0))
	green := material.NewPhong(core.NewVec3(0, 0.2, 0), core.NewVec3(0, 0.5, 0), core.Splat(0.5), 32)
	blue := material.NewMatte(core.NewVec3(0, 0, 0.2), core.NewVec3(0, 0, 1))

	s.AddPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), groundMaterial())
	s.AddSphere(core.NewVec3(-4, 0, -7), 1, red)
	s.AddSphere(core.NewVec3(0, 0, -7), 2, green)
	s.AddSphere(core.NewVec3(4, 0, -7), 1, blue)

	s.AddPointLight(core.NewVec3(-4, 4, -3), core.Splat(1))

	return s
}

// NewSingleSphereScene creates one diffuse sphere on the ground plane lit from the upper left
func NewSingleSphereScene() *Scene {
	s := NewScene("single-sphere")

	diffuse := material.NewMatte(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.8, 0.8, 0.8))

	s.AddPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), groundMaterial())
	s.AddSphere(core.NewVec3(0, 0, -7), 2, diffuse)

	s.AddPointLight(core.NewVec3(-4, 4, -3), core.Splat(1))

	return s
}

// NewEmptyScene creates a scene with no surfaces and no lights. It renders black.
func NewEmptyScene() *Scene {
	return NewScene("empty")
}
