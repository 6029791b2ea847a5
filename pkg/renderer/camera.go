package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/whitted-raytracer/pkg/core"
)

// ErrDegenerateCamera is returned when a camera configuration cannot produce an orthonormal basis
// or a usable view plane
var ErrDegenerateCamera = errors.New("degenerate camera")

// basisEpsilon bounds |up × w| below which up is treated as parallel to the view direction
const basisEpsilon = 1e-9

// CameraConfig contains all parameters needed to create a pinhole camera
type CameraConfig struct {
	Eye           core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction, must not be parallel to LookAt-Eye
	Left, Right   float64   // Horizontal view-plane bounds
	Bottom, Top   float64   // Vertical view-plane bounds
	FocalDistance float64   // Distance from eye to view plane
	Width         int       // Image width in pixels
	Height        int       // Image height in pixels
}

// DefaultCameraConfig returns the reference camera: eye at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:           core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Left:          -0.1,
		Right:         0.1,
		Bottom:        -0.1,
		Top:           0.1,
		FocalDistance: 0.1,
		Width:         512,
		Height:        512,
	}
}

// Camera maps pixel coordinates to world-space rays through a flat view plane
type Camera struct {
	eye     core.Vec3
	u, v, w core.Vec3 // right, up, backward
	config  CameraConfig
}

// NewCamera creates a camera, failing fast on configurations that would render a degenerate image
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d must be positive", ErrDegenerateCamera, config.Width, config.Height)
	}
	if config.FocalDistance <= 0 {
		return nil, fmt.Errorf("%w: focal distance %g must be positive", ErrDegenerateCamera, config.FocalDistance)
	}
	if config.Left == config.Right || config.Bottom == config.Top {
		return nil, fmt.Errorf("%w: empty view plane [%g,%g]x[%g,%g]", ErrDegenerateCamera,
			config.Left, config.Right, config.Bottom, config.Top)
	}

	back := config.Eye.Subtract(config.LookAt)
	if back.LengthSquared() == 0 {
		return nil, fmt.Errorf("%w: eye and look-at are both %v", ErrDegenerateCamera, config.Eye)
	}
	w := back.Normalize()

	right := config.Up.Cross(w)
	if right.Length() < basisEpsilon {
		return nil, fmt.Errorf("%w: up %v is parallel to view direction %v", ErrDegenerateCamera, config.Up, w.Negate())
	}
	u := right.Normalize()
	v := w.Cross(u)

	return &Camera{
		eye:    config.Eye,
		u:      u,
		v:      v,
		w:      w,
		config: config,
	}, nil
}

// GetRay generates a ray through real-valued pixel coordinates (i, j).
// j = 0 is the bottom edge of the view plane.
func (c *Camera) GetRay(i, j float64) core.Ray {
	cfg := c.config
	su := cfg.Left + (cfg.Right-cfg.Left)*i/float64(cfg.Width)
	sv := cfg.Bottom + (cfg.Top-cfg.Bottom)*j/float64(cfg.Height)

	direction := c.w.Multiply(-cfg.FocalDistance).
		Add(c.u.Multiply(su)).
		Add(c.v.Multiply(sv))

	return core.NewRay(c.eye, direction)
}

// Basis returns the camera's right, up and backward unit vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.config.Height }
