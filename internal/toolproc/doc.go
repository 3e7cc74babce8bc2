// Package toolproc runs external tools as one-shot child processes.
//
// Run executes a command, feeds it stdin, captures stdout and stderr,
// and reports the exit code. A non-zero exit is not an error: lint
// tools routinely exit non-zero to signal findings, and the caller
// decides what each code means. Timeouts come from the context and are
// surfaced as ErrTimeout.
//
// The Runner tracks in-flight runs by ID so callers can observe what is
// executing:
//
//	runner := toolproc.NewRunner()
//	res, err := runner.Run(ctx, "ruff-check", argv, source)
//	if errors.Is(err, toolproc.ErrTimeout) {
//	    // tool exceeded its deadline
//	}
package toolproc
