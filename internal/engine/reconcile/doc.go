// Package reconcile applies a transformed full-file text back onto a
// live document while preserving per-line editor state and the caret.
//
// Given the text a document held before an external tool ran and the
// text the tool produced, Apply mutates the document line-by-line so
// that its final content equals the new text exactly, lines that were
// untouched keep their prior state tags, touched lines end up tagged as
// changed, and the caret lands on a clamped, valid position.
//
// Two paths share the entry point:
//
//   - Fast path, taken when the line counts match (the overwhelmingly
//     common case for formatters and autofixers): one whole-buffer
//     replace followed by a per-line state reapplication.
//   - General path, taken when lines were added or removed: a Myers
//     edit script applied top to bottom with running offset tracking.
//
// Apply issues no host calls at all when the two texts are identical.
package reconcile
