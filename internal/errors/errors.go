// Package errors renders user-facing failures. Fatal errors are mirrored to
// the log file so a later doctor run can reconstruct what the user saw.
package errors

import (
	"fmt"
	"os"

	"github.com/calumwright/praxis/internal/logger"
)

// Hinted pairs an error with a follow-up command suggestion. The hint prints
// on its own line after the error text.
type Hinted struct {
	Err  error
	Hint string
}

func (h Hinted) Error() string { return h.Err.Error() }

func (h Hinted) Unwrap() error { return h.Err }

// WithHint attaches a follow-up suggestion to an error.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return Hinted{Err: err, Hint: hint}
}

// Format formats an error message with a consistent "Error: " prefix. A
// hinted error carries its suggestion on a second line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if h, ok := err.(Hinted); ok && h.Hint != "" {
		return fmt.Sprintf("Error: %v\n%s", h.Err, h.Hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
