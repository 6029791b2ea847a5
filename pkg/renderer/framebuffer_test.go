package renderer

import (
	"testing"

	"github.com/df07/whitted-raytracer/pkg/core"
)

func TestFramebuffer_RowMajorLayout(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	if len(fb.Pix) != 18 {
		t.Fatalf("Expected 18 floats, got %d", len(fb.Pix))
	}

	fb.Set(2, 1, core.NewVec3(0.1, 0.2, 0.3))

	// (y*W + x)*3 = (1*3 + 2)*3 = 15
	if fb.Pix[15] != 0.1 || fb.Pix[16] != 0.2 || fb.Pix[17] != 0.3 {
		t.Errorf("Expected pixel (2,1) at offset 15, got %v", fb.Pix[15:])
	}
	if got := fb.At(2, 1); got != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Expected At to read back the pixel, got %v", got)
	}

	row := fb.Row(1)
	if len(row) != 9 || row[6] != 0.1 {
		t.Errorf("Unexpected row slice %v", row)
	}
	for _, v := range fb.Row(0) {
		if v != 0 {
			t.Errorf("Expected row 0 to stay black, got %v", fb.Row(0))
			break
		}
	}
}
