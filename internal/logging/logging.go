// Package logging holds the debug loggers shared by the engine packages.
// Output is discarded unless NODESWEEP_DEBUG is set or Enable is called.
package logging

import (
	"io"
	"log"
	"os"
)

// EnvDebug enables debug logging to debug.log when set to any non-empty value
const EnvDebug = "NODESWEEP_DEBUG"

var (
	Debug   *log.Logger
	Scanner *log.Logger
	Enabled bool
)

func init() {
	if os.Getenv(EnvDebug) == "" {
		disable()
		return
	}

	// Open debug.log once for all loggers
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		Enable(os.Stderr)
		return
	}
	Enable(debugFile)
}

// Enable routes both loggers to w
func Enable(w io.Writer) {
	Enabled = true
	Debug = log.New(w, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	Scanner = log.New(w, "[SCANNER] ", log.Ltime|log.Lmicroseconds)
}

func disable() {
	Enabled = false
	Debug = log.New(io.Discard, "", 0)
	Scanner = log.New(io.Discard, "", 0)
}
