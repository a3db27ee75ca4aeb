// Package debug provides conditional debug logging for bwtree.
//
// Debug logging is enabled by setting the BWTREE_DEBUG environment variable:
//
//	BWTREE_DEBUG=1 bwtree tree.yaml
//
// When enabled, messages go to stderr with timestamps. A full-screen TUI
// owns the terminal, so hosts usually redirect output with SetOutput.
// When disabled (default), every function returns immediately.
package debug

import (
	"io"
	"log"
	"os"
	"time"
)

const prefix = "[BWTREE_DEBUG] "

var (
	// enabled is true when BWTREE_DEBUG is set
	enabled bool
	logger  = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
)

func init() {
	enabled = os.Getenv("BWTREE_DEBUG") != ""
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
}

// SetOutput redirects debug output, e.g. to a log file while a TUI runs.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Log writes a debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !enabled || !cond {
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

// Trace logs entry and exit with timing:
//
//	defer debug.Trace("loader.Load")()
func Trace(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}
