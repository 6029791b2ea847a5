package material

import "github.com/df07/whitted-raytracer/pkg/core"

// Phong holds the local illumination coefficients of a surface.
// Values are not validated; negative reflectance gives undefined shading.
type Phong struct {
	Ambient   core.Vec3 // ka, scaled by each light's intensity unconditionally
	Diffuse   core.Vec3 // kd
	Specular  core.Vec3 // ks
	Shininess float64   // Specular exponent
}

// NewPhong creates a new Phong material
func NewPhong(ambient, diffuse, specular core.Vec3, shininess float64) Phong {
	return Phong{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}

// NewMatte creates a Phong material with no specular response
func NewMatte(ambient, diffuse core.Vec3) Phong {
	return NewPhong(ambient, diffuse, core.Vec3{}, 0)
}
