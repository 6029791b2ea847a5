package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/material"
	"github.com/df07/whitted-raytracer/pkg/renderer"
)

// Vec is a JSON [x, y, z] triple
type Vec core.Vec3

// UnmarshalJSON implements json.Unmarshaler
func (v *Vec) UnmarshalJSON(data []byte) error {
	var xyz []float64
	if err := json.Unmarshal(data, &xyz); err != nil {
		return fmt.Errorf("expected [x, y, z]: %w", err)
	}
	if len(xyz) != 3 {
		return fmt.Errorf("expected [x, y, z], got %d components", len(xyz))
	}
	*v = Vec(core.NewVec3(xyz[0], xyz[1], xyz[2]))
	return nil
}

// Color is a linear RGB color. In JSON it is an [r, g, b] triple, a single
// grey level, or a CSS color name such as "white" or "cornflowerblue".
type Color core.Vec3

// UnmarshalJSON implements json.Unmarshaler
func (c *Color) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty color")
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = Color(core.NewVec3(float64(rgba.R)/255, float64(rgba.G)/255, float64(rgba.B)/255))
	case '[':
		var rgb []float64
		if err := json.Unmarshal(data, &rgb); err != nil {
			return fmt.Errorf("expected [r, g, b]: %w", err)
		}
		if len(rgb) != 3 {
			return fmt.Errorf("expected [r, g, b], got %d components", len(rgb))
		}
		*c = Color(core.NewVec3(rgb[0], rgb[1], rgb[2]))
	default:
		var grey float64
		if err := json.Unmarshal(data, &grey); err != nil {
			return fmt.Errorf("expected color name, [r, g, b] or number: %w", err)
		}
		*c = Color(core.Splat(grey))
	}
	return nil
}

// FileConfig is the on-disk scene description
type FileConfig struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Camera      CameraCfg    `json:"camera"`
	Sampling    SamplingCfg  `json:"sampling"`
	Surfaces    []SurfaceCfg `json:"surfaces"`
	Lights      []LightCfg   `json:"lights"`
}

// CameraCfg mirrors renderer.CameraConfig. Omitted fields keep the reference camera's values.
type CameraCfg struct {
	Eye           Vec     `json:"eye"`
	LookAt        Vec     `json:"lookAt"`
	Up            Vec     `json:"up"`
	Left          float64 `json:"left"`
	Right         float64 `json:"right"`
	Bottom        float64 `json:"bottom"`
	Top           float64 `json:"top"`
	FocalDistance float64 `json:"focalDistance"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
}

// SamplingCfg mirrors renderer.SamplingConfig
type SamplingCfg struct {
	SamplesPerPixel int   `json:"samplesPerPixel"`
	Seed            int64 `json:"seed"`
	NumWorkers      int   `json:"numWorkers,omitempty"`
}

// MaterialCfg describes a Phong material
type MaterialCfg struct {
	Ambient   Color   `json:"ambient"`
	Diffuse   Color   `json:"diffuse"`
	Specular  Color   `json:"specular"`
	Shininess float64 `json:"shininess"`
}

// SurfaceCfg describes one surface. Type selects which geometric fields apply.
type SurfaceCfg struct {
	Type     string      `json:"type"` // "sphere" or "plane"
	Center   Vec         `json:"center"`
	Radius   float64     `json:"radius"`
	Point    Vec         `json:"point"`
	Normal   Vec         `json:"normal"`
	Material MaterialCfg `json:"material"`
}

// LightCfg describes a point light
type LightCfg struct {
	Position  Vec   `json:"position"`
	Intensity Color `json:"intensity"`
}

// defaultFileConfig returns a file config prefilled with the reference camera and sampling
func defaultFileConfig() FileConfig {
	cam := renderer.DefaultCameraConfig()
	sampling := renderer.DefaultSamplingConfig()
	return FileConfig{
		Camera: CameraCfg{
			Eye:           Vec(cam.Eye),
			LookAt:        Vec(cam.LookAt),
			Up:            Vec(cam.Up),
			Left:          cam.Left,
			Right:         cam.Right,
			Bottom:        cam.Bottom,
			Top:           cam.Top,
			FocalDistance: cam.FocalDistance,
			Width:         cam.Width,
			Height:        cam.Height,
		},
		Sampling: SamplingCfg{
			SamplesPerPixel: sampling.SamplesPerPixel,
			Seed:            sampling.Seed,
			NumWorkers:      sampling.NumWorkers,
		},
	}
}

// LoadSceneFile reads a JSON scene description from disk
func LoadSceneFile(filename string) (*Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", filename, err)
	}
	return s, nil
}

// ParseScene decodes a JSON scene description and builds the scene.
// Geometry is validated here so nothing fails mid-render.
func ParseScene(r io.Reader) (*Scene, error) {
	cfg := defaultFileConfig()

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	return cfg.Build()
}

// Build converts a file config into a scene
func (cfg FileConfig) Build() (*Scene, error) {
	s := NewScene(cfg.Name)

	s.CameraConfig = renderer.CameraConfig{
		Eye:           core.Vec3(cfg.Camera.Eye),
		LookAt:        core.Vec3(cfg.Camera.LookAt),
		Up:            core.Vec3(cfg.Camera.Up),
		Left:          cfg.Camera.Left,
		Right:         cfg.Camera.Right,
		Bottom:        cfg.Camera.Bottom,
		Top:           cfg.Camera.Top,
		FocalDistance: cfg.Camera.FocalDistance,
		Width:         cfg.Camera.Width,
		Height:        cfg.Camera.Height,
	}
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: cfg.Sampling.SamplesPerPixel,
		Seed:            cfg.Sampling.Seed,
		NumWorkers:      cfg.Sampling.NumWorkers,
	}

	for i, surface := range cfg.Surfaces {
		mat := material.NewPhong(
			core.Vec3(surface.Material.Ambient),
			core.Vec3(surface.Material.Diffuse),
			core.Vec3(surface.Material.Specular),
			surface.Material.Shininess,
		)

		switch strings.ToLower(surface.Type) {
		case "sphere":
			if surface.Radius <= 0 {
				return nil, fmt.Errorf("surface %d: sphere radius %g must be positive", i, surface.Radius)
			}
			s.AddSphere(core.Vec3(surface.Center), surface.Radius, mat)
		case "plane":
			if core.Vec3(surface.Normal).IsZero() {
				return nil, fmt.Errorf("surface %d: plane normal must be non-zero", i)
			}
			s.AddPlane(core.Vec3(surface.Point), core.Vec3(surface.Normal), mat)
		default:
			return nil, fmt.Errorf("surface %d: unknown surface type %q", i, surface.Type)
		}
	}

	for _, light := range cfg.Lights {
		s.AddPointLight(core.Vec3(light.Position), core.Vec3(light.Intensity))
	}

	return s, nil
}
