package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/present"
	"github.com/df07/whitted-raytracer/pkg/renderer"
	"github.com/df07/whitted-raytracer/pkg/scene"
)

// renderResult is an encoded render plus its statistics
type renderResult struct {
	PNG       []byte
	Stats     renderer.RenderStats
	Locations []string // Where the image was published, if requested
}

// CompleteEvent is the final event of a streamed render
type CompleteEvent struct {
	ImageData string   `json:"imageData"` // Base64 encoded PNG
	Stats     Stats    `json:"stats"`
	ElapsedMs int64    `json:"elapsedMs"`
	Locations []string `json:"locations,omitempty"`
}

// handleRender renders once and responds with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger := NewWebLogger(newRenderID(), nil)
	result, err := s.render(r.Context(), sceneObj, req, logger)
	if err != nil {
		s.writeRenderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", fmt.Sprintf("%d", result.Stats.TotalSamples))
	if len(result.Locations) > 0 {
		w.Header().Set("X-Published-Locations", strings.Join(result.Locations, ","))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.PNG)
}

// handleRenderStream renders once, streaming console output via SSE and finishing with the image
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	s.setSSEHeaders(w)

	ctx := r.Context()
	consoleChan, webLogger := s.setupConsoleLogging()

	type outcome struct {
		result renderResult
		err    error
	}
	done := make(chan outcome, 1)
	startTime := time.Now()
	go func() {
		result, err := s.render(ctx, sceneObj, req, webLogger)
		done <- outcome{result, err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			sendSSEJSON(w, flusher, "console", msg)
		case out := <-done:
			// Flush console output logged before the render returned
			for drained := false; !drained; {
				select {
				case msg := <-consoleChan:
					sendSSEJSON(w, flusher, "console", msg)
				default:
					drained = true
				}
			}

			if out.err != nil {
				sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", out.err))
				return
			}
			sendSSEJSON(w, flusher, "complete", CompleteEvent{
				ImageData: base64.StdEncoding.EncodeToString(out.result.PNG),
				Stats:     toStats(out.result.Stats),
				ElapsedMs: time.Since(startTime).Milliseconds(),
				Locations: out.result.Locations,
			})
			return
		}
	}
}

// render traces the scene and encodes the framebuffer, publishing it when requested
func (s *Server) render(ctx context.Context, sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (renderResult, error) {
	raytracer, err := renderer.NewRaytracer(sceneObj, logger)
	if err != nil {
		return renderResult{}, err
	}

	fb, stats, err := raytracer.RenderContext(ctx)
	if err != nil {
		return renderResult{}, err
	}

	result := renderResult{Stats: stats}

	if req.Publish && len(s.publishers) > 0 {
		name := fmt.Sprintf("%s_%s", sceneObj.Name, time.Now().Format("20060102_150405"))
		presenter := present.NewPresenter(req.Preview, logger, s.publishers...)
		if result.Locations, err = presenter.Present(ctx, name, fb); err != nil {
			return renderResult{}, err
		}
	}

	img := present.ToImage(fb)
	if result.PNG, err = present.EncodePNG(present.Preview(img, req.Preview)); err != nil {
		return renderResult{}, err
	}

	return result, nil
}

// writeRenderError maps render failures to status codes
func (s *Server) writeRenderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, renderer.ErrDegenerateCamera):
		writeError(w, http.StatusBadRequest, err.Error())
	case r.Context().Err() != nil:
		// Client went away, nobody to answer
		log.Printf("Render cancelled: %v", err)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(newRenderID(), consoleChan)
	return consoleChan, webLogger
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		TotalSamples:    stats.TotalSamples,
		AverageSamples:  stats.AverageSamples(),
		SamplesPerPixel: stats.SamplesPerPixel,
		Workers:         stats.Workers,
	}
}

// sendSSEJSON sends v as the JSON payload of an SSE event
func sendSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
