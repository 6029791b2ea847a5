package renderer

import (
	"testing"
)

func TestRenderStats_AverageSamples(t *testing.T) {
	var stats RenderStats
	if avg := stats.AverageSamples(); avg != 0 {
		t.Errorf("Expected 0 for empty stats, got %f", avg)
	}

	stats.add(RowResult{Row: 0, Pixels: 4, Samples: 16})
	stats.add(RowResult{Row: 1, Pixels: 4, Samples: 16})

	if stats.Rows != 2 || stats.TotalPixels != 8 || stats.TotalSamples != 32 {
		t.Errorf("Unexpected totals: %+v", stats)
	}

	expected := 4.0
	tolerance := 0.0001
	if avg := stats.AverageSamples(); avg < expected-tolerance || avg > expected+tolerance {
		t.Errorf("Expected average %f, got %f", expected, avg)
	}
}

func TestRenderStats_FromRender(t *testing.T) {
	rt, err := NewRaytracer(createSingleSphereScene(6, 5), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, stats := rt.Render()

	if stats.Rows != 5 || stats.TotalPixels != 30 {
		t.Errorf("Expected 5 rows and 30 pixels, got %+v", stats)
	}
	if stats.TotalSamples != 30*stats.SamplesPerPixel {
		t.Errorf("Expected %d samples, got %d", 30*stats.SamplesPerPixel, stats.TotalSamples)
	}
	if stats.Workers < 1 || stats.Workers > 5 {
		t.Errorf("Expected 1..5 workers, got %d", stats.Workers)
	}
	if stats.Elapsed <= 0 {
		t.Error("Expected positive elapsed time")
	}
}
