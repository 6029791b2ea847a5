package present

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/whitted-raytracer/pkg/renderer"
)

// ToImage converts a framebuffer to an 8-bit image. Values are clamped to [0,1]
// and rows are flipped so the buffer's bottom scanline becomes the image's last row.
func ToImage(fb *renderer.Framebuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).Clamp(0.0, 1.0)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}

	return imaging.FlipV(img)
}

// Preview scales img to fit within size x size, keeping its aspect ratio.
// A non-positive size returns img unchanged.
func Preview(img image.Image, size int) image.Image {
	if size <= 0 {
		return img
	}
	return resize.Thumbnail(uint(size), uint(size), img, resize.Bilinear)
}

// EncodePNG encodes img as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
