package ruff

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dshills/lintstorm/internal/config"
	"github.com/dshills/lintstorm/internal/lint"
	"github.com/dshills/lintstorm/internal/toolproc"
)

// Errors returned by the ruff adapter.
var (
	// ErrNotFound is returned when no ruff executable can be located.
	ErrNotFound = errors.New("ruff executable not found")

	// ErrSyntaxError is returned when ruff cannot parse the source.
	// Callers must not apply any output to the buffer.
	ErrSyntaxError = errors.New("source has syntax errors")
)

// ConcisePattern matches one line of ruff's concise output format.
// E and F codes are errors, everything else (including the bare
// invalid-syntax marker) is a warning.
const ConcisePattern = `^.+?:(?P<line>\d+):(?P<col>\d+): (?:(?P<error>E\d+|F\d+)|(?P<warning>[\w-]+))\s*:?\s+(?P<message>.*)$`

// versionTimeout bounds the quick version probe.
const versionTimeout = 5 * time.Second

// Ruff drives a ruff executable through the process runner.
type Ruff struct {
	exe   string
	procs *toolproc.Runner
}

// New creates an adapter around the ruff executable at exe.
// A nil procs creates a private process runner.
func New(exe string, procs *toolproc.Runner) *Ruff {
	if procs == nil {
		procs = toolproc.NewRunner()
	}
	return &Ruff{exe: exe, procs: procs}
}

// Exe returns the path of the executable the adapter drives.
func (r *Ruff) Exe() string {
	return r.exe
}

// Find locates a ruff executable: first on PATH, then bundled under
// <baseDir>/tools/Ruff/. An empty baseDir means the directory of the
// running binary.
func Find(baseDir string) (string, error) {
	if path, err := exec.LookPath("ruff"); err == nil {
		return path, nil
	}

	if baseDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", ErrNotFound
		}
		baseDir = filepath.Dir(exe)
	}

	path := bundledPath(baseDir)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, nil
	}
	return "", ErrNotFound
}

// bundledPath returns where a bundled ruff would live under baseDir.
func bundledPath(baseDir string) string {
	name := "ruff"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(baseDir, "tools", "Ruff", name)
}

// Tool returns the lint tool definition for checking Python sources
// with the given configuration.
func (r *Ruff) Tool(cfg config.Config) *lint.Tool {
	cmd := []string{r.exe, "check", "--output-format=concise"}
	cmd = appendRuleFlags(cmd, cfg)
	cmd = append(cmd, lint.FilePlaceholder)

	return &lint.Tool{
		Name:           "ruff",
		Syntax:         "Python",
		Cmd:            cmd,
		Pattern:        ConcisePattern,
		TempfileSuffix: "py",
		Timeout:        cfg.Timeout,
	}
}

// Fix runs ruff check --fix over src on stdin and returns the fixed
// source. Exit codes 0 and 1 both count as success since ruff exits 1
// when unfixable violations remain. Output equal to src means no fixes
// were needed.
func (r *Ruff) Fix(ctx context.Context, cfg config.Config, src, filename string, unsafe bool) (string, error) {
	argv := []string{r.exe, "check", "--fix", "-"}
	if unsafe {
		argv = append(argv, "--unsafe-fixes")
	}
	argv = appendRuleFlags(argv, cfg)
	argv = append(argv, "--stdin-filename", filename)

	ctx, cancel := context.WithTimeout(ctx, timeout(cfg))
	defer cancel()

	res, err := r.procs.Run(ctx, "ruff-fix", argv, src)
	if err != nil {
		return "", err
	}
	if syntaxError(res.Stderr) {
		return "", ErrSyntaxError
	}
	if res.ExitCode != 0 && res.ExitCode != 1 {
		return "", fmt.Errorf("ruff fix: exit %d: %s", res.ExitCode, firstLine(res.Stderr))
	}
	return res.Stdout, nil
}

// Format runs ruff format over src on stdin and returns the formatted
// source. Only exit code 0 is success.
func (r *Ruff) Format(ctx context.Context, cfg config.Config, src, filename string) (string, error) {
	argv := []string{r.exe, "format", "-", "--stdin-filename", filename}

	ctx, cancel := context.WithTimeout(ctx, timeout(cfg))
	defer cancel()

	res, err := r.procs.Run(ctx, "ruff-format", argv, src)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		if syntaxError(res.Stderr) {
			return "", ErrSyntaxError
		}
		return "", fmt.Errorf("ruff format: exit %d: %s", res.ExitCode, firstLine(res.Stderr))
	}
	return res.Stdout, nil
}

// Version probes the executable and returns its version string, the
// last whitespace-separated field of the output.
func (r *Ruff) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	res, err := r.procs.Run(ctx, "ruff-version", []string{r.exe, "--version"}, "")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("ruff version: exit %d: %s", res.ExitCode, firstLine(res.Stderr))
	}

	fields := strings.Fields(res.Stdout)
	if len(fields) == 0 {
		return "", fmt.Errorf("ruff version: empty output")
	}
	return fields[len(fields)-1], nil
}

// appendRuleFlags adds --select and --ignore for the normalized config.
// Flags must come before the file argument.
func appendRuleFlags(cmd []string, cfg config.Config) []string {
	cfg = cfg.Normalize()
	if len(cfg.Select) > 0 {
		cmd = append(cmd, "--select", strings.Join(cfg.Select, ","))
	}
	if len(cfg.Ignore) > 0 {
		cmd = append(cmd, "--ignore", strings.Join(cfg.Ignore, ","))
	}
	return cmd
}

// syntaxError reports whether stderr indicates unparseable source.
func syntaxError(stderr string) bool {
	return strings.Contains(stderr, "invalid-syntax") ||
		strings.Contains(stderr, "Failed to parse")
}

// timeout returns the configured tool timeout, defaulted when unset.
func timeout(cfg config.Config) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return config.DefaultTimeout
}

// firstLine trims stderr to its first non-empty line for error text.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return "(no output)"
}
