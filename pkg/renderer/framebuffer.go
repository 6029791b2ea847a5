package renderer

import "github.com/df07/whitted-raytracer/pkg/core"

// Framebuffer is a flat row-major buffer of RGB float triples.
// Row 0 is the bottom scanline, matching the camera's view-plane mapping.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []float64 // len = Width*Height*3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*3),
	}
}

// offset returns the index of the red component of pixel (x, y)
func (fb *Framebuffer) offset(x, y int) int {
	return (y*fb.Width + x) * 3
}

// Set writes a color to pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	i := fb.offset(x, y)
	fb.Pix[i] = c.X
	fb.Pix[i+1] = c.Y
	fb.Pix[i+2] = c.Z
}

// At returns the color at pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	i := fb.offset(x, y)
	return core.NewVec3(fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2])
}

// Row returns the slice of Pix backing scanline y
func (fb *Framebuffer) Row(y int) []float64 {
	start := fb.offset(0, y)
	return fb.Pix[start : start+fb.Width*3]
}
