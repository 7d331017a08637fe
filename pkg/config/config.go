package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/lightlab/go-2d-raytracer/pkg/tracer"
)

// Config is the top-level configuration file
type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Trace  TraceConfig  `yaml:"trace"`
	Render RenderConfig `yaml:"render"`
}

// CanvasConfig sets the bounds rays terminate against
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TraceConfig bounds the simulation
type TraceConfig struct {
	MaxBounces   int     `yaml:"max_bounces"`
	MinIntensity float64 `yaml:"min_intensity"`
	UseBVH       bool    `yaml:"use_bvh"`
}

// RenderConfig controls how traces are drawn
type RenderConfig struct {
	LineWidth  float64 `yaml:"line_width"`
	DrawShapes bool    `yaml:"draw_shapes"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Trace: TraceConfig{
			MaxBounces:   5,
			MinIntensity: 0.01,
			UseBVH:       true,
		},
		Render: RenderConfig{
			LineWidth:  1.5,
			DrawShapes: true,
		},
	}
}

// Load reads a YAML configuration file, layered over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// TracerConfig maps the file settings onto the engine's configuration
func (c *Config) TracerConfig() tracer.Config {
	return tracer.Config{
		MaxBounces:   c.Trace.MaxBounces,
		MinIntensity: c.Trace.MinIntensity,
		UseBVH:       c.Trace.UseBVH,
		CanvasWidth:  c.Canvas.Width,
		CanvasHeight: c.Canvas.Height,
	}
}
