package lint

import "errors"

// Lint framework errors.
var (
	// ErrNoPattern is returned when a tool has no output pattern.
	ErrNoPattern = errors.New("tool has no output pattern")

	// ErrBadPattern is returned when a tool's output pattern does not
	// compile or lacks the required named groups.
	ErrBadPattern = errors.New("invalid output pattern")

	// ErrNoCommand is returned when a tool has an empty command line.
	ErrNoCommand = errors.New("tool has no command")

	// ErrToolExists is returned when registering a duplicate tool name.
	ErrToolExists = errors.New("tool already registered")

	// ErrNoTool is returned when no tool is registered for a syntax.
	ErrNoTool = errors.New("no tool registered for syntax")
)
