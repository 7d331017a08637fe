package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lightlab/go-2d-raytracer/pkg/config"
	"github.com/lightlab/go-2d-raytracer/pkg/render"
	"github.com/lightlab/go-2d-raytracer/pkg/scene"
	"github.com/lightlab/go-2d-raytracer/pkg/tracer"
)

func main() {
	sceneFlag := flag.String("scene", "mirror", "Scene: 'mirror', 'lens', 'showcase', or a path to a scene JSON file")
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	outDir := flag.String("out", "output", "Output directory")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("2D Light Tracer")
		fmt.Println("Usage: lighttracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Built-in scenes:")
		fmt.Println("  mirror   - Point source against a tilted mirror with a target")
		fmt.Println("  lens     - Glass lens focusing a beam onto a target")
		fmt.Println("  showcase - One of every shape kind with a surface-emitting source")
		fmt.Println()
		fmt.Println("Output is saved to <out>/<scene>/trace_<timestamp>.png")
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		cfg = loaded
	}

	sc, sceneName, err := buildScene(*sceneFlag, cfg)
	if err != nil {
		log.Fatalf("Error building scene: %v", err)
	}

	t := tracer.New(cfg.TracerConfig(), log.Default())

	startTime := time.Now()
	trace := t.TraceAll(sc)
	traceTime := time.Since(startTime)

	stats := t.Stats()
	fmt.Printf("Trace completed in %v: %d segments, %d paths hit a target\n",
		traceTime, len(trace.Segments), countTargetPaths(trace))
	fmt.Printf("BVH: %d objects, %d nodes, %d leaves, depth %d\n",
		stats.ObjectCount, stats.NodeCount, stats.LeafCount, stats.Depth)

	img := render.Draw(trace, sc, render.Options{
		Width:      int(cfg.Canvas.Width),
		Height:     int(cfg.Canvas.Height),
		LineWidth:  cfg.Render.LineWidth,
		DrawShapes: cfg.Render.DrawShapes,
	})

	outputDir := filepath.Join(*outDir, sceneName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("trace_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		log.Fatalf("Error creating file: %v", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		log.Fatalf("Error encoding image: %v", err)
	}
	fmt.Printf("Saved %s\n", filename)
}

// buildScene resolves the -scene flag to a built-in scene or a JSON file
func buildScene(arg string, cfg *config.Config) (*scene.Scene, string, error) {
	w, h := cfg.Canvas.Width, cfg.Canvas.Height

	switch arg {
	case "mirror":
		return scene.NewMirrorScene(w, h), arg, nil
	case "lens":
		return scene.NewLensScene(w, h), arg, nil
	case "showcase":
		return scene.NewShowcaseScene(w, h), arg, nil
	}

	sc, err := scene.Load(arg)
	if err != nil {
		return nil, "", err
	}
	name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
	return sc, name, nil
}

// countTargetPaths counts primary rays whose path reached a target
func countTargetPaths(trace *tracer.Trace) int {
	count := 0
	for _, root := range trace.Roots {
		if trace.Segments[root].HitsTarget {
			count++
		}
	}
	return count
}
