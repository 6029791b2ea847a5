package renderer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/geometry"
	"github.com/df07/whitted-raytracer/pkg/lights"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of jittered rays per pixel
	Seed            int64 // Base seed; row y samples from Seed+y
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
}

// DefaultSamplingConfig returns the reference configuration
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 64,
		Seed:            42,
		NumWorkers:      0,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetSurfaces() []geometry.Surface
	GetLights() []lights.PointLight
	GetCameraConfig() CameraConfig
	GetSamplingConfig() SamplingConfig
}

// Raytracer holds everything a render pass reads. It is immutable while rendering,
// so workers share it without locking.
type Raytracer struct {
	camera   *Camera
	surfaces []geometry.Surface
	lights   []lights.PointLight
	config   SamplingConfig
	logger   core.Logger
}

// NewRaytracer creates a new raytracer, building the scene's camera
func NewRaytracer(scene Scene, logger core.Logger) (*Raytracer, error) {
	camera, err := NewCamera(scene.GetCameraConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	if logger == nil {
		logger = discardLogger{}
	}

	rt := &Raytracer{
		camera:   camera,
		surfaces: scene.GetSurfaces(),
		lights:   scene.GetLights(),
		logger:   logger,
	}
	rt.SetSamplingConfig(scene.GetSamplingConfig())

	return rt, nil
}

// SetSamplingConfig updates the sampling configuration. Must not be called during a render.
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = 1
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	rt.config = config
}

// GetSamplingConfig returns the effective sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// GetCamera returns the camera built for this render
func (rt *Raytracer) GetCamera() *Camera {
	return rt.camera
}

// Trace returns the shaded color of the nearest surface along the ray, or black on a miss
func (rt *Raytracer) Trace(ray core.Ray) core.Vec3 {
	var nearest geometry.Surface
	var nearestHit geometry.Hit
	closestSoFar := math.Inf(1)

	for _, surface := range rt.surfaces {
		if hit, isHit := surface.Intersect(ray); isHit && hit.T < closestSoFar {
			closestSoFar = hit.T
			nearest = surface
			nearestHit = hit
		}
	}

	if nearest == nil {
		return core.Vec3{}
	}

	point := nearest.PositionAt(ray, nearestHit.T)
	return Shade(ray, point, nearestHit.Normal, nearest.GetMaterial(), rt.lights, rt.surfaces)
}

// SamplePixel averages SamplesPerPixel jittered samples for pixel (x, y) and gamma-corrects the result
func (rt *Raytracer) SamplePixel(x, y int, random *rand.Rand) core.Vec3 {
	samples := rt.config.SamplesPerPixel
	colorAccum := core.Vec3{}

	for s := 0; s < samples; s++ {
		u := float64(x) + random.Float64()
		v := float64(y) + random.Float64()
		colorAccum = colorAccum.Add(rt.Trace(rt.camera.GetRay(u, v)))
	}

	return GammaCorrect(colorAccum.Multiply(1.0 / float64(samples)))
}

// rowRandom returns the random stream for scanline y. Seeding per row keeps output
// independent of worker count and scheduling.
func (rt *Raytracer) rowRandom(y int) *rand.Rand {
	return rand.New(rand.NewSource(rt.config.Seed + int64(y)))
}

// renderRow renders scanline y into fb. Only the row's own slice of fb is written.
func (rt *Raytracer) renderRow(y int, fb *Framebuffer) RowResult {
	random := rt.rowRandom(y)
	for x := 0; x < fb.Width; x++ {
		fb.Set(x, y, rt.SamplePixel(x, y, random))
	}

	return RowResult{
		Row:     y,
		Pixels:  fb.Width,
		Samples: fb.Width * rt.config.SamplesPerPixel,
	}
}

// Render performs one full render pass
func (rt *Raytracer) Render() (*Framebuffer, RenderStats) {
	fb, stats, _ := rt.RenderContext(context.Background())
	return fb, stats
}

// RenderContext performs one full render pass over a worker pool, one task per scanline.
// Rows not yet started when ctx is done are skipped and ctx.Err() is returned.
func (rt *Raytracer) RenderContext(ctx context.Context) (*Framebuffer, RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	fb := NewFramebuffer(width, height)

	workerPool := NewWorkerPool(rt, height, rt.config.NumWorkers)
	stats := RenderStats{
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Workers:         workerPool.GetNumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (using %d workers)...\n",
		width, height, rt.config.SamplesPerPixel, workerPool.GetNumWorkers())

	workerPool.Start()
	for y := 0; y < height; y++ {
		workerPool.SubmitTask(RowTask{Ctx: ctx, Row: y, Target: fb})
	}

	var renderErr error
	for i := 0; i < height; i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.add(result)
	}
	workerPool.Stop()

	stats.Elapsed = time.Since(startTime)
	if renderErr != nil {
		rt.logger.Printf("Render stopped after %d of %d rows: %v\n", stats.Rows, height, renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Elapsed, stats.TotalSamples)
	return fb, stats, nil
}
