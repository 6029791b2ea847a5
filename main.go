package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/whitted-raytracer/pkg/config"
	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/present"
	"github.com/df07/whitted-raytracer/pkg/renderer"
	"github.com/df07/whitted-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", "", "Path to a .env file (default .env)")
	sceneName := flag.String("scene", "", "Scene: built-in name, scene file name, or path to a .json file")
	width := flag.Int("width", 0, "Image width in pixels (0 keeps the scene's)")
	height := flag.Int("height", 0, "Image height in pixels (0 keeps the scene's)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 keeps the scene's)")
	seed := flag.Int64("seed", 0, "Base random seed (0 keeps the scene's)")
	workers := flag.Int("workers", 0, "Worker goroutines (0 uses all CPUs)")
	outputDir := flag.String("output", "", "Output directory (default output)")
	previewSize := flag.Int("preview", 0, "Also write a preview thumbnail of this size")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		printHelp()
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags that were given explicitly win over the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "samples":
			cfg.Samples = *samples
		case "seed":
			cfg.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "output":
			cfg.OutputDir = *outputDir
		case "preview":
			cfg.PreviewSize = *previewSize
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListAllScenes()
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
	}
	for _, info := range scenes {
		fmt.Printf("  %-16s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Settings can also come from RAYTRACER_* and S3_* environment variables or a .env file.")
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
}

// createScene resolves the configured scene and applies resolution and sampling overrides
func createScene(cfg config.Config) (*scene.Scene, error) {
	s, err := scene.NewSceneByName(cfg.Scene)
	if err != nil {
		return nil, err
	}
	cfg.ApplyTo(s)
	return s, nil
}

// createPublishers returns the file publisher plus an S3 publisher when a bucket is configured
func createPublishers(cfg config.Config, sceneDir string) ([]present.Publisher, error) {
	publishers := []present.Publisher{present.NewFilePublisher(sceneDir)}

	if s3Config := cfg.S3(); s3Config.Enabled() {
		s3Publisher, err := present.NewS3Publisher(s3Config)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, s3Publisher)
	}

	return publishers, nil
}

// run renders the configured scene once and publishes the result
func run(ctx context.Context, cfg config.Config, logger core.Logger) error {
	s, err := createScene(cfg)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}

	sceneName := s.Name
	if sceneName == "" {
		sceneName = "scene"
	}
	logger.Printf("Rendering %s at %dx%d...\n", sceneName, s.CameraConfig.Width, s.CameraConfig.Height)

	raytracer, err := renderer.NewRaytracer(s, logger)
	if err != nil {
		return err
	}

	fb, stats, err := raytracer.RenderContext(ctx)
	if err != nil {
		return fmt.Errorf("render aborted: %w", err)
	}
	logger.Printf("Samples per pixel: %.1f over %d rows with %d workers\n",
		stats.AverageSamples(), stats.Rows, stats.Workers)

	publishers, err := createPublishers(cfg, filepath.Join(cfg.OutputDir, sceneName))
	if err != nil {
		return err
	}

	name := fmt.Sprintf("render_%s", time.Now().Format("20060102_150405"))
	locations, err := present.NewPresenter(cfg.PreviewSize, logger, publishers...).Present(ctx, name, fb)
	if err != nil {
		return err
	}

	for _, location := range locations {
		logger.Printf("Render saved as %s\n", location)
	}
	return nil
}
