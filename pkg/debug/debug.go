// Package debug provides conditional debug logging for nv.
//
// Debug logging is enabled by setting the NV_DEBUG environment variable:
//
//	NV_DEBUG=1 nv --source snapshot.yaml 2>debug.log
//
// When enabled, debug messages are written to stderr with timestamps.
// When disabled (default), all debug functions are no-ops.
//
// Usage:
//
//	import "github.com/vanderheijden86/nodeview/pkg/debug"
//
//	func reload() {
//	    debug.Log("reloaded %d groups", len(h))
//	    debug.LogTiming("reload", elapsed)
//	}
package debug

import (
	"io"
	"log"
	"os"
	"time"
)

const logPrefix = "[NV_DEBUG] "

var (
	// enabled is true when NV_DEBUG env var is set
	enabled bool
	// logger writes to stderr with [NV_DEBUG] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("NV_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, logPrefix, log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
// Note: This also initializes the logger if not already done.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, logPrefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output. A TUI session sends it to a file so it
// does not corrupt the alternate screen.
func SetOutput(w io.Writer) {
	if logger == nil {
		logger = log.New(w, logPrefix, log.Ltime|log.Lmicroseconds)
		return
	}
	logger.SetOutput(w)
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !enabled || !cond {
		return
	}
	logger.Printf(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
//
//	func reload() {
//	    defer debug.LogEnterExit("reload")()
//	}
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}
