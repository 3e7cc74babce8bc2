package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/lintstorm/internal/toolproc"
)

// Runner executes lint tools against in-memory source text.
type Runner struct {
	procs *toolproc.Runner

	// OnSummary, if set, receives tool summary lines.
	OnSummary func(tool, line string)
}

// NewRunner creates a Runner backed by the given process runner.
// A nil procs creates a private one.
func NewRunner(procs *toolproc.Runner) *Runner {
	if procs == nil {
		procs = toolproc.NewRunner()
	}
	return &Runner{procs: procs}
}

// Check runs tool against src and returns its diagnostics.
//
// The source is written to a temp file whose extension comes from
// filename, falling back to the tool's TempfileSuffix, so tools that
// sniff file types behave as they would on the real file.
func (r *Runner) Check(ctx context.Context, tool *Tool, src, filename string) ([]Diagnostic, error) {
	parser, err := NewParser(tool)
	if err != nil {
		return nil, err
	}
	if r.OnSummary != nil {
		parser.OnSummary = func(line string) {
			r.OnSummary(tool.Name, line)
		}
	}

	tmpPath, err := writeTempFile(src, filename, tool.TempfileSuffix)
	if err != nil {
		return nil, fmt.Errorf("lint %s: %w", tool.Name, err)
	}
	defer os.Remove(tmpPath)

	argv := expandCmd(tool.Cmd, tmpPath)

	ctx, cancel := context.WithTimeout(ctx, tool.EffectiveTimeout())
	defer cancel()

	res, err := r.procs.Run(ctx, tool.Name+"-check", argv, "")
	if err != nil {
		return nil, err
	}

	return parser.Parse(res.Stdout), nil
}

// expandCmd substitutes the file placeholder in a tool command line.
func expandCmd(cmd []string, path string) []string {
	argv := make([]string, len(cmd))
	for i, arg := range cmd {
		if arg == FilePlaceholder {
			argv[i] = path
		} else {
			argv[i] = arg
		}
	}
	return argv
}

// writeTempFile stores src in a temp file carrying a useful extension.
func writeTempFile(src, filename, suffix string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" && suffix != "" {
		ext = "." + strings.TrimPrefix(suffix, ".")
	}

	f, err := os.CreateTemp("", "lintstorm-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := f.WriteString(src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}
