package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/whitted-raytracer/pkg/config"
	"github.com/df07/whitted-raytracer/pkg/present"
	"github.com/df07/whitted-raytracer/pkg/scene"
)

// Request limits
const (
	maxDimension = 2048
	maxSamples   = 1024
)

// Server handles web requests for the raytracer
type Server struct {
	cfg        config.Config
	publishers []present.Publisher // Used for renders requested with publish=true
}

// NewServer creates a new web server. An S3 publisher is attached when a bucket is configured.
func NewServer(cfg config.Config) (*Server, error) {
	s := &Server{cfg: cfg}

	if s3Config := cfg.S3(); s3Config.Enabled() {
		publisher, err := present.NewS3Publisher(s3Config)
		if err != nil {
			return nil, err
		}
		s.publishers = append(s.publishers, publisher)
	}

	return s, nil
}

// RenderRequest represents a render request from the client.
// Zero values keep the scene's own settings.
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene name (e.g., "default")
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Samples int    `json:"samples"` // Samples per pixel
	Seed    int64  `json:"seed"`    // Base random seed
	Preview int    `json:"preview"` // Thumbnail size, 0 returns the full image
	Publish bool   `json:"publish"` // Also hand the image to the configured publishers
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	AverageSamples  float64 `json:"averageSamples"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	Workers         int     `json:"workers"`
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and discovered scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: s.cfg.Scene}

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", s.cfg.Width, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", s.cfg.Height, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", s.cfg.Samples, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Preview, err = parseIntParam(query, "preview", 0, 1, maxDimension); err != nil {
		return nil, err
	}

	req.Seed = s.cfg.Seed
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if value := query.Get("publish"); value != "" {
		if req.Publish, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid publish: %s", value)
		}
	}

	// Performance warning
	if req.Width*req.Height > 1024*1024 && req.Samples > 256 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves the requested scene and applies the request's overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.NewSceneByName(req.Scene)
	if err != nil {
		return nil, err
	}

	config.Config{
		Width:   req.Width,
		Height:  req.Height,
		Samples: req.Samples,
		Seed:    req.Seed,
		Workers: s.cfg.Workers,
	}.ApplyTo(sceneObj)

	return sceneObj, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
