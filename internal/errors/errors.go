package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/balkashynov/tally/internal/logger"
)

var (
	// ErrNotFound marks an operation on an id that is absent from the store.
	ErrNotFound = stderrors.New("not found")
	// ErrValidation marks input rejected before it reaches the store.
	ErrValidation = stderrors.New("invalid input")
	// ErrStore marks any failure of the underlying storage.
	ErrStore = stderrors.New("store failure")
)

// NotFound reports that the record kind/id does not exist.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q %w", kind, id, ErrNotFound)
}

// Validation reports a rejected field value.
func Validation(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}

// Store wraps a storage failure with the operation that caused it.
// The original error stays reachable through errors.Is/As.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStore, err)
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
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
