// Package ruff adapts the Ruff linter and formatter for Python sources.
//
// It locates the ruff executable (on PATH or bundled next to the host
// binary), builds check commands honoring the configured rule selection,
// and exposes the stdin-based fix and format operations. Syntax errors
// reported by ruff are surfaced as ErrSyntaxError so callers can leave
// the buffer untouched.
package ruff
