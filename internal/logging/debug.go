package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// DebugEnvVar enables debug output when set to any non-empty value.
const DebugEnvVar = "TODO_DEBUG"

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects debug and logger output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// DebugEnabled returns true if debug mode is enabled via TODO_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(writer(), format, args...)
	}
}

// New returns a text logger writing to the current output. Debug records are
// emitted when verbose is true or TODO_DEBUG is set.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || DebugEnabled() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(writer(), &slog.HandlerOptions{Level: level}))
}
