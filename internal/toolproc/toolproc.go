package toolproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Errors returned by tool execution.
var (
	// ErrTimeout is returned when a tool exceeds its deadline.
	ErrTimeout = errors.New("tool timed out")

	// ErrEmptyCommand is returned for an empty argument vector.
	ErrEmptyCommand = errors.New("empty command")
)

// State represents the state of a tracked run.
type State int32

const (
	// StateCreated indicates the run has been created but not started.
	StateCreated State = iota
	// StateRunning indicates the tool is currently executing.
	StateRunning
	// StateExited indicates the tool has exited.
	StateExited
	// StateKilled indicates the tool was killed by its deadline.
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Result holds the captured output of one tool run.
type Result struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string

	// ExitCode is the tool's exit code. Zero on success.
	ExitCode int
}

// Run is one tracked tool execution.
type Run struct {
	// ID uniquely identifies the run.
	ID string

	// Name is a human-readable label (e.g. "ruff-check").
	Name string

	// Started is when execution began.
	Started time.Time

	state atomic.Int32
}

// State returns the run's current state.
func (r *Run) State() State {
	return State(r.state.Load())
}

// Runner executes tools and tracks in-flight runs.
// It is safe for concurrent use.
type Runner struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{runs: make(map[string]*Run)}
}

// Active returns the number of runs currently executing.
func (r *Runner) Active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}

// Run executes argv with the given stdin and captures its output.
//
// The context bounds execution: deadline expiry kills the process and
// returns ErrTimeout. Non-zero exit codes are reported through the
// Result, not as errors.
func (r *Runner) Run(ctx context.Context, name string, argv []string, stdin string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, ErrEmptyCommand
	}

	run := &Run{
		ID:      uuid.New().String(),
		Name:    name,
		Started: time.Now(),
	}
	run.state.Store(int32(StateCreated))

	r.mu.Lock()
	r.runs[run.ID] = run
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.runs, run.ID)
		r.mu.Unlock()
	}()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	run.state.Store(int32(StateRunning))
	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		run.state.Store(int32(StateKilled))
		return Result{}, fmt.Errorf("%s: %w", name, ErrTimeout)
	}

	run.state.Store(int32(StateExited))

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitErr.ExitCode(),
		}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}

	return Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}, nil
}
