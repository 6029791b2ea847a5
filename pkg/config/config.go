// Package config loads runtime settings from an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/whitted-raytracer/pkg/present"
	"github.com/df07/whitted-raytracer/pkg/scene"
)

// DefaultEnvFile is read when Load is given an empty path
const DefaultEnvFile = ".env"

// Config holds every setting the CLI and web server share
type Config struct {
	Scene       string
	Width       int // 0 keeps the scene's own resolution
	Height      int
	Samples     int   // 0 keeps the scene's own sample count
	Seed        int64 // 0 keeps the scene's own seed
	Workers     int   // 0 uses runtime.NumCPU()
	OutputDir   string
	PreviewSize int // 0 disables preview thumbnails
	Port        int

	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3Prefix    string
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Scene:     "default",
		OutputDir: "output",
		Port:      8080,
		S3Region:  "us-east-1",
	}
}

// Load reads envFile (DefaultEnvFile when empty) into the process environment
// and builds a Config from it. A missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to Default
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.Scene = getEnv("RAYTRACER_SCENE", cfg.Scene)
	cfg.OutputDir = getEnv("RAYTRACER_OUTPUT_DIR", cfg.OutputDir)

	ints := []struct {
		key    string
		target *int
	}{
		{"RAYTRACER_WIDTH", &cfg.Width},
		{"RAYTRACER_HEIGHT", &cfg.Height},
		{"RAYTRACER_SAMPLES", &cfg.Samples},
		{"RAYTRACER_WORKERS", &cfg.Workers},
		{"RAYTRACER_PREVIEW_SIZE", &cfg.PreviewSize},
		{"RAYTRACER_PORT", &cfg.Port},
	}
	for _, v := range ints {
		if err := getEnvInt(v.key, v.target); err != nil {
			return Config{}, err
		}
	}

	if value, ok := os.LookupEnv("RAYTRACER_SEED"); ok {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RAYTRACER_SEED %q: %w", value, err)
		}
		cfg.Seed = seed
	}

	cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3Region = getEnv("S3_REGION", cfg.S3Region)
	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.S3Prefix = os.Getenv("S3_PREFIX")

	return cfg, nil
}

// S3 returns the bucket settings for the presenter
func (c Config) S3() present.S3Config {
	return present.S3Config{
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		Prefix:    c.S3Prefix,
	}
}

// ApplyTo overrides the scene's resolution and sampling with every non-zero setting
func (c Config) ApplyTo(s *scene.Scene) {
	if c.Width > 0 {
		s.CameraConfig.Width = c.Width
	}
	if c.Height > 0 {
		s.CameraConfig.Height = c.Height
	}
	if c.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = c.Samples
	}
	if c.Seed != 0 {
		s.SamplingConfig.Seed = c.Seed
	}
	if c.Workers > 0 {
		s.SamplingConfig.NumWorkers = c.Workers
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, target *int) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*target = n
	return nil
}
