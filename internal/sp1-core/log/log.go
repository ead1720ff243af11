// Package log holds the process-wide structured logger.
package log

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

// L is the logger every package writes to.
var L hclog.Logger

func init() {
	L = hclog.New(&hclog.LoggerOptions{
		Name:  "sp1",
		Level: hclog.Info,
	})

	if str := os.Getenv("TRACE"); str != "" {
		L.SetLevel(hclog.Trace)
	}
}

// SetOutput replaces L with a logger writing to w at the given level.
func SetOutput(w io.Writer, level hclog.Level) {
	L = hclog.New(&hclog.LoggerOptions{
		Name:   "sp1",
		Level:  level,
		Output: w,
	})
}

// Named returns a sub-logger for a component.
func Named(name string) hclog.Logger {
	return L.Named(name)
}
