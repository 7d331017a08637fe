// Package server exposes the tracer over HTTP: a render endpoint that traces
// a named scene and returns the drawn result as PNG.
package server

import (
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/lightlab/go-2d-raytracer/pkg/config"
	"github.com/lightlab/go-2d-raytracer/pkg/render"
	"github.com/lightlab/go-2d-raytracer/pkg/scene"
	"github.com/lightlab/go-2d-raytracer/pkg/tracer"
)

// Server handles web requests for the light tracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Start registers the handlers and blocks serving HTTP
func (s *Server) Start() error {
	mux := s.Handler()
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

// Handler returns the route table, separated from Start for testing
func (s *Server) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

// handleRender traces a named scene and responds with the rendered PNG.
// Query parameters: scene (mirror|lens|showcase), width, height, maxBounces,
// minIntensity, bvh.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	cfg := config.Default()

	if v := queryFloat(r, "width"); v > 0 {
		cfg.Canvas.Width = v
	}
	if v := queryFloat(r, "height"); v > 0 {
		cfg.Canvas.Height = v
	}
	if v := queryInt(r, "maxBounces"); v > 0 {
		cfg.Trace.MaxBounces = v
	}
	if v := queryFloat(r, "minIntensity"); v > 0 {
		cfg.Trace.MinIntensity = v
	}
	if r.URL.Query().Get("bvh") == "false" {
		cfg.Trace.UseBVH = false
	}

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "mirror"
	}

	var sc *scene.Scene
	switch sceneName {
	case "mirror":
		sc = scene.NewMirrorScene(cfg.Canvas.Width, cfg.Canvas.Height)
	case "lens":
		sc = scene.NewLensScene(cfg.Canvas.Width, cfg.Canvas.Height)
	case "showcase":
		sc = scene.NewShowcaseScene(cfg.Canvas.Width, cfg.Canvas.Height)
	default:
		http.Error(w, fmt.Sprintf("unknown scene %q", sceneName), http.StatusBadRequest)
		return
	}

	t := tracer.New(cfg.TracerConfig(), log.Default())
	trace := t.TraceAll(sc)

	img := render.Draw(trace, sc, render.Options{
		Width:      int(cfg.Canvas.Width),
		Height:     int(cfg.Canvas.Height),
		LineWidth:  cfg.Render.LineWidth,
		DrawShapes: cfg.Render.DrawShapes,
	})

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		log.Printf("encode render response: %v", err)
	}
}

func queryFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
