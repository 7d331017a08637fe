package core

// Logger is the minimal logging interface the engine depends on.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...interface{})
}
