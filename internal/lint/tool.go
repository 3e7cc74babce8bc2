package lint

import (
	"fmt"
	"regexp"
	"time"
)

// FilePlaceholder is the command-line token replaced with the path of
// the temp file holding the source under analysis.
const FilePlaceholder = "@"

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 30 * time.Second

// Severity classifies a diagnostic.
type Severity uint8

const (
	// SeverityWarning marks style and convention findings.
	SeverityWarning Severity = iota

	// SeverityError marks findings that indicate real defects.
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one finding reported by a tool.
type Diagnostic struct {
	// Line is the 1-based line number reported by the tool.
	Line int

	// Col is the 1-based column number reported by the tool.
	Col int

	// Code is the tool's rule code, if any (e.g. "E501").
	Code string

	// Severity classifies the finding.
	Severity Severity

	// Message is the human-readable description.
	Message string
}

// Display returns the message prefixed with the rule code when present.
func (d Diagnostic) Display() string {
	if d.Code == "" {
		return d.Message
	}
	return fmt.Sprintf("[%s] %s", d.Code, d.Message)
}

// Tool declaratively describes an external lint tool.
type Tool struct {
	// Name identifies the tool (e.g. "ruff").
	Name string

	// Syntax is the lexer name the tool applies to (e.g. "Python").
	Syntax string

	// Cmd is the command line. One argument should be FilePlaceholder,
	// which the runner replaces with the temp file path.
	Cmd []string

	// Pattern matches one diagnostic per output line. Required named
	// groups: line, message. Optional: col, error, warning. A non-empty
	// error group makes the finding an error; a warning group makes it
	// a warning.
	Pattern string

	// TempfileSuffix is the extension (without dot) given to the temp
	// file when the source has no usable extension of its own.
	TempfileSuffix string

	// Timeout bounds one invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Validate checks the tool definition and returns the compiled pattern.
func (t *Tool) Validate() (*regexp.Regexp, error) {
	if len(t.Cmd) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCommand, t.Name)
	}
	if t.Pattern == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoPattern, t.Name)
	}

	re, err := regexp.Compile(t.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadPattern, t.Name, err)
	}

	names := make(map[string]bool)
	for _, name := range re.SubexpNames() {
		names[name] = true
	}
	if !names["line"] || !names["message"] {
		return nil, fmt.Errorf("%w: %s: pattern needs line and message groups", ErrBadPattern, t.Name)
	}

	return re, nil
}

// EffectiveTimeout returns the tool's timeout, defaulted when unset.
func (t *Tool) EffectiveTimeout() time.Duration {
	if t.Timeout > 0 {
		return t.Timeout
	}
	return DefaultTimeout
}
