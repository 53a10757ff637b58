package logging

import (
	"fmt"
	"os"
)

var verbose bool

// SetVerbose enables debug output regardless of the environment. Wired from
// the application's verbose configuration.
func SetVerbose(enabled bool) {
	verbose = enabled
}

// DebugEnabled returns true if debug mode is enabled via the KY_DEBUG
// environment variable or the verbose setting
func DebugEnabled() bool {
	return verbose || os.Getenv("KY_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Printf(format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Println(args...)
	}
}

// Errorf prints a formatted message to stderr unconditionally.
// Used for failures that must stay visible even outside debug mode.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}
