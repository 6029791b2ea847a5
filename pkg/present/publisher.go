package present

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/renderer"
)

// Publisher delivers a finished image somewhere and returns where it went
type Publisher interface {
	Publish(ctx context.Context, name string, img image.Image) (string, error)
}

// FilePublisher writes PNG files into a directory
type FilePublisher struct {
	Dir string
}

// NewFilePublisher creates a publisher writing into dir
func NewFilePublisher(dir string) *FilePublisher {
	return &FilePublisher{Dir: dir}
}

// Publish saves img as <Dir>/<name>.png, creating Dir if needed
func (fp *FilePublisher) Publish(ctx context.Context, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(fp.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(fp.Dir, name+".png")
	if err := imaging.Save(img, filename); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return filename, nil
}

// Presenter hands a finished framebuffer to every configured publisher
type Presenter struct {
	previewSize int
	publishers  []Publisher
	logger      core.Logger
}

// NewPresenter creates a presenter. previewSize > 0 also publishes a "<name>_preview" thumbnail.
func NewPresenter(previewSize int, logger core.Logger, publishers ...Publisher) *Presenter {
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}
	return &Presenter{
		previewSize: previewSize,
		publishers:  publishers,
		logger:      logger,
	}
}

// Present converts fb once and publishes the full image, plus a preview when enabled.
// It stops at the first publisher error.
func (p *Presenter) Present(ctx context.Context, name string, fb *renderer.Framebuffer) ([]string, error) {
	img := ToImage(fb)
	images := map[string]image.Image{name: img}
	order := []string{name}

	if p.previewSize > 0 {
		previewName := name + "_preview"
		images[previewName] = Preview(img, p.previewSize)
		order = append(order, previewName)
	}

	var locations []string
	for _, publisher := range p.publishers {
		for _, n := range order {
			start := time.Now()
			location, err := publisher.Publish(ctx, n, images[n])
			if err != nil {
				return locations, err
			}
			p.logger.Printf("Published %s in %v\n", location, time.Since(start))
			locations = append(locations, location)
		}
	}

	return locations, nil
}
