// Package document defines the host document contract the lint engine
// mutates, plus an in-memory implementation used by tests and the CLI.
//
// The editor host owns the real document: its lines, the per-line state
// tags shown in the gutter, and the caret. This package models that
// ownership as a capability interface so the reconciler and the plugin
// commands can be exercised against an in-memory fake instead of a live
// editor.
//
// Coordinates are (column, row) pairs, both 0-indexed, columns in bytes.
// Line text never includes the line terminator; whether the document ends
// with a terminator is tracked separately and reproduced by Text().
//
// Basic usage:
//
//	doc := document.NewMemDocument("a\nb\nc\n")
//	doc.SetLineState(1, document.StateSaved)
//	doc.Delete(0, 1, 0, 2)   // remove line "b"
//	text := doc.Text()       // "a\nc\n"
package document
