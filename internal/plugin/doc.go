// Package plugin implements the editor-facing command surface.
//
// A Plugin binds the host editor, the active document and the ruff
// adapter. Its commands (Fix, FixUnsafe, Format, EditConfig, Help)
// mirror what the editor exposes to the user: each runs the tool over
// the full buffer text and, when the tool produced valid changed
// output, applies it through the reconciler so line states and the
// caret survive. Tool failures, timeouts and syntax errors are
// reported through the Host and never touch the buffer.
//
// The Host interface abstracts the editor: status line, alert dialogs,
// confirmation prompts, file opening and the settings directory.
package plugin
