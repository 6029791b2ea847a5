package geometry

import (
	"math"
	"testing"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/material"
)

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.Phong{})
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Intersect(ray)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Intersect_DistanceMinusRadius(t *testing.T) {
	tests := []struct {
		name     string
		center   core.Vec3
		radius   float64
		distance float64
	}{
		{"unit sphere at 5", core.NewVec3(0, 0, -5), 1.0, 5.0},
		{"reference sphere", core.NewVec3(0, 0, -7), 2.0, 7.0},
		{"small sphere far away", core.NewVec3(0, 0, -100), 0.25, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, material.Phong{})
			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

			hit, isHit := sphere.Intersect(ray)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expectedT := tt.distance - tt.radius
			if math.Abs(hit.T-expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
			}

			point := sphere.PositionAt(ray, hit.T)
			expectedNormal := point.Subtract(tt.center).Normalize()
			if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
			}
			if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}
		})
	}
}

func TestSphere_Intersect_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.Phong{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.Intersect(ray)
	if !isHit {
		t.Fatal("Expected hit on far side, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}

	// Normal stays outward; it is not flipped toward the ray
	expectedNormal := core.NewVec3(0, 0, 1)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected outward normal %v, got %v", expectedNormal, hit.Normal)
	}
}

func TestSphere_Intersect_BehindOrigin(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 5), 1.0, material.Phong{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Intersect(ray)
	if isHit {
		t.Errorf("Expected miss for sphere behind ray, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Intersect_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.Phong{})
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Intersect(ray)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	point := sphere.PositionAt(ray, hit.T)
	if point.Subtract(expectedPoint).Length() > 1e-6 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, point)
	}
}

func TestSphere_GetMaterial(t *testing.T) {
	mat := material.NewMatte(core.NewVec3(0.2, 0, 0), core.NewVec3(1, 0, 0))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	if sphere.GetMaterial() != mat {
		t.Errorf("Expected material %v, got %v", mat, sphere.GetMaterial())
	}
}
