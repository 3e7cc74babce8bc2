package document

// LineState is an opaque per-line tag attached 1:1 to each line index.
// The host decides what the values mean; the engine only ever writes
// StateChanged and re-applies values it previously read.
type LineState uint8

// Line states mirroring the host editor's gutter markers.
const (
	// StateNone marks a line with no pending edits.
	StateNone LineState = iota

	// StateChanged marks a line with unsaved modifications.
	StateChanged

	// StateAdded marks a line added since the file was opened.
	StateAdded

	// StateSaved marks a line that was modified and then saved.
	StateSaved
)

// String returns a human-readable state name.
func (st LineState) String() string {
	switch st {
	case StateNone:
		return "none"
	case StateChanged:
		return "changed"
	case StateAdded:
		return "added"
	case StateSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// Document is the capability contract a host editor exposes for one open
// text buffer. All coordinates are (column, row) pairs, 0-indexed.
//
// Implementations are assumed synchronous and non-blocking; mutation
// methods either succeed or the host clamps the arguments itself.
type Document interface {
	// Text returns the full buffer content, including the trailing line
	// terminator if the buffer carries one.
	Text() string

	// LineCount returns the number of lines. A document always has at
	// least one line, which may be empty.
	LineCount() int

	// LineLen returns the byte length of the line at row, excluding the
	// terminator. Out-of-range rows return 0.
	LineLen(row int) int

	// LineText returns the text of the line at row without its
	// terminator. Out-of-range rows return "".
	LineText(row int) string

	// Replace atomically replaces the region between (startCol, startRow)
	// and (endCol, endRow) with text. A region end at or past the end of
	// the last line extends through the trailing terminator, so replacing
	// the whole buffer controls trailing-terminator presence exactly.
	Replace(startCol, startRow, endCol, endRow int, text string)

	// Insert inserts text at (col, row). Text ending with a terminator
	// inserts whole lines before row; row == LineCount() appends.
	Insert(col, row int, text string)

	// Delete removes the region between (startCol, startRow) and
	// (endCol, endRow). Delete(0, r, 0, r+1) removes line r entirely.
	Delete(startCol, startRow, endCol, endRow int)

	// LineStates returns the per-line state tags. The returned slice is
	// a snapshot; mutating it does not affect the document.
	LineStates() []LineState

	// SetLineState sets the state tag of the line at row.
	SetLineState(row int, st LineState)

	// Caret returns the caret position as (col, row).
	Caret() (col, row int)

	// SetCaret moves the caret to (col, row).
	SetCaret(col, row int)

	// NotifyChanged signals the host to refresh dependent view state
	// (re-render, re-run syntax analysis).
	NotifyChanged()
}
