package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/weekgrid/internal/logger"
)

var (
	// ErrNotInitialized is returned when storage has not been created yet
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrNoActivity is returned when there are no intervals to build a grid from
	ErrNoActivity = errors.New("no activity recorded")
	// ErrNoSuchWeek is returned when navigation runs past the catalog
	ErrNoSuchWeek = errors.New("no activity in the requested week")
)

var hints = map[error]string{
	ErrNotInitialized: "run 'weekgrid init' first",
	ErrNoActivity:     "import intervals with 'weekgrid import <file>'",
	ErrNoSuchWeek:     "list weeks with activity using 'weekgrid weeks'",
}

// Hint returns a suggested next step for known errors, or "".
func Hint(err error) string {
	for target, hint := range hints {
		if errors.Is(err, target) {
			return hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint line for known errors.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, hint)
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
