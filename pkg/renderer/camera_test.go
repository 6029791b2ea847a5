package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/whitted-raytracer/pkg/core"
)

func TestCamera_Basis(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	u, v, w := camera.Basis()
	tests := []struct {
		name     string
		got      core.Vec3
		expected core.Vec3
	}{
		{"u points right", u, core.NewVec3(1, 0, 0)},
		{"v points up", v, core.NewVec3(0, 1, 0)},
		{"w points backward", w, core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestCamera_BasisIsOrthonormal(t *testing.T) {
	config := DefaultCameraConfig()
	config.Eye = core.NewVec3(1, 2, 3)
	config.LookAt = core.NewVec3(-2, 0, -5)
	config.Up = core.NewVec3(0.2, 1, 0)

	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	u, v, w := camera.Basis()
	for _, axis := range []core.Vec3{u, v, w} {
		if math.Abs(axis.Length()-1) > 1e-9 {
			t.Errorf("Expected unit basis vector, got %v (length %f)", axis, axis.Length())
		}
	}
	if math.Abs(u.Dot(v)) > 1e-9 || math.Abs(u.Dot(w)) > 1e-9 || math.Abs(v.Dot(w)) > 1e-9 {
		t.Errorf("Basis is not orthogonal: u=%v v=%v w=%v", u, v, w)
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		i, j      float64
		direction core.Vec3
	}{
		{"image center", 256, 256, core.NewVec3(0, 0, -1)},
		{"bottom left corner", 0, 0, core.NewVec3(-0.1, -0.1, -0.1).Normalize()},
		{"top right corner", 512, 512, core.NewVec3(0.1, 0.1, -0.1).Normalize()},
		{"top edge center", 256, 512, core.NewVec3(0, 0.1, -0.1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.i, tt.j)

			if !ray.Origin.IsZero() {
				t.Errorf("Expected origin at eye, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestNewCamera_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *CameraConfig)
	}{
		{"up parallel to view direction", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, -3) }},
		{"up anti-parallel to view direction", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
		{"zero up", func(c *CameraConfig) { c.Up = core.Vec3{} }},
		{"eye equals look-at", func(c *CameraConfig) { c.LookAt = c.Eye }},
		{"zero width", func(c *CameraConfig) { c.Width = 0 }},
		{"negative height", func(c *CameraConfig) { c.Height = -1 }},
		{"zero focal distance", func(c *CameraConfig) { c.FocalDistance = 0 }},
		{"empty view plane", func(c *CameraConfig) { c.Left = c.Right }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			tt.modify(&config)

			camera, err := NewCamera(config)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrDegenerateCamera) {
				t.Errorf("Expected ErrDegenerateCamera, got %v", err)
			}
			if camera != nil {
				t.Errorf("Expected nil camera on error, got %v", camera)
			}
		})
	}
}
