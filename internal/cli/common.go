package cli

import (
	"io"
	"sync"

	"github.com/fatih/color"
)

// Success prints a success message
func Success(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(w, "✓ "+format+"\n", args...)
}

// Warning prints a warning message
func Warning(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(w, "⚠️  "+format+"\n", args...)
}

// console serializes writes from the menu and the display loop so lines never interleave.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}
