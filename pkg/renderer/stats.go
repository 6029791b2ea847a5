package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	Rows            int           // Scanlines rendered
	Workers         int           // Workers used
	Elapsed         time.Duration // Wall time of the render pass
}

// AverageSamples returns the mean samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// add folds the result of a single row into the totals
func (s *RenderStats) add(result RowResult) {
	s.Rows++
	s.TotalPixels += result.Pixels
	s.TotalSamples += result.Samples
}
