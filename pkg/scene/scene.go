package scene

import (
	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/geometry"
	"github.com/df07/whitted-raytracer/pkg/lights"
	"github.com/df07/whitted-raytracer/pkg/material"
	"github.com/df07/whitted-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// It is built once and must not change after rendering starts.
type Scene struct {
	Name           string
	Surfaces       []geometry.Surface  // Objects in the scene, in insertion order
	Lights         []lights.PointLight // Lights in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// NewScene creates an empty scene with the reference camera and sampling settings
func NewScene(name string) *Scene {
	return &Scene{
		Name:           name,
		Surfaces:       make([]geometry.Surface, 0),
		Lights:         make([]lights.PointLight, 0),
		CameraConfig:   renderer.DefaultCameraConfig(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}

// AddSurface appends a surface to the scene
func (s *Scene) AddSurface(surface geometry.Surface) {
	s.Surfaces = append(s.Surfaces, surface)
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light lights.PointLight) {
	s.Lights = append(s.Lights, light)
}

// AddSphere adds a sphere with the given material
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Phong) {
	s.AddSurface(geometry.NewSphere(center, radius, mat))
}

// AddPlane adds an infinite plane with the given material
func (s *Scene) AddPlane(point, normal core.Vec3, mat material.Phong) {
	s.AddSurface(geometry.NewPlane(point, normal, mat))
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(position, intensity core.Vec3) {
	s.AddLight(lights.NewPointLight(position, intensity))
}

// GetSurfaces returns the scene's surfaces
func (s *Scene) GetSurfaces() []geometry.Surface { return s.Surfaces }

// GetLights returns the scene's lights
func (s *Scene) GetLights() []lights.PointLight { return s.Lights }

// GetCameraConfig returns the camera parameters and image resolution
func (s *Scene) GetCameraConfig() renderer.CameraConfig { return s.CameraConfig }

// GetSamplingConfig returns the sampling parameters
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig { return s.SamplingConfig }

// SetResolution overrides the image size, keeping the view plane
func (s *Scene) SetResolution(width, height int) {
	s.CameraConfig.Width = width
	s.CameraConfig.Height = height
}
