package tracer

// Config bounds a trace. MaxBounces and MinIntensity are the sole termination
// guarantees: each bounce spawns at most two children, so finite rays times
// finite generations keeps the work queue finite.
type Config struct {
	MaxBounces   int     // Maximum ray generations per emitted ray
	MinIntensity float64 // Rays below this intensity are dropped silently
	UseBVH       bool    // When false, every query falls back to brute force
	CanvasWidth  float64
	CanvasHeight float64
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxBounces:   5,
		MinIntensity: 0.01,
		UseBVH:       true,
		CanvasWidth:  800,
		CanvasHeight: 600,
	}
}
