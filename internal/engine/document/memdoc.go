package document

import (
	"strings"
	"sync"
)

// CallCounts records how many times each mutating Document operation ran.
// Tests use it to assert that no-op reconciliations issue no host calls.
type CallCounts struct {
	Replace  int
	Insert   int
	Delete   int
	SetState int
	SetCaret int
	Notify   int
}

// Total returns the sum of all recorded calls.
func (c CallCounts) Total() int {
	return c.Replace + c.Insert + c.Delete + c.SetState + c.SetCaret + c.Notify
}

// MemDocument is an in-memory Document implementation backed by a line
// slice with a parallel state slice. It follows the host editor's line
// model: a document always has at least one line, line text excludes
// terminators, and trailing-terminator presence is tracked separately.
//
// All methods are thread-safe.
type MemDocument struct {
	mu           sync.RWMutex
	lines        []string
	states       []LineState
	caretCol     int
	caretRow     int
	finalNewline bool
	calls        CallCounts
}

// Option is a functional option for configuring a MemDocument.
type Option func(*MemDocument)

// WithCaret sets the initial caret position.
func WithCaret(col, row int) Option {
	return func(d *MemDocument) {
		d.caretCol = col
		d.caretRow = row
	}
}

// WithLineStates sets the initial per-line states. States beyond the
// line count are ignored; missing entries default to StateNone.
func WithLineStates(states []LineState) Option {
	return func(d *MemDocument) {
		for i, st := range states {
			if i >= len(d.states) {
				break
			}
			d.states[i] = st
		}
	}
}

// NewMemDocument creates a document with the given initial content.
// Line endings are normalized to LF.
func NewMemDocument(text string, opts ...Option) *MemDocument {
	d := &MemDocument{}
	d.setContent(text, StateNone)

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// setContent replaces the full line/state model from raw text.
func (d *MemDocument) setContent(text string, st LineState) {
	text = normalizeLineEndings(text)
	d.finalNewline = strings.HasSuffix(text, "\n")
	if d.finalNewline {
		text = text[:len(text)-1]
	}

	d.lines = strings.Split(text, "\n")
	d.states = make([]LineState, len(d.lines))
	for i := range d.states {
		d.states[i] = st
	}
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// Read Operations

// Text returns the full buffer content.
func (d *MemDocument) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	text := strings.Join(d.lines, "\n")
	if d.finalNewline {
		text += "\n"
	}
	return text
}

// LineCount returns the number of lines.
func (d *MemDocument) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

// LineLen returns the byte length of the line at row.
func (d *MemDocument) LineLen(row int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if row < 0 || row >= len(d.lines) {
		return 0
	}
	return len(d.lines[row])
}

// LineText returns the text of the line at row.
func (d *MemDocument) LineText(row int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row]
}

// LineStates returns a snapshot of the per-line states.
func (d *MemDocument) LineStates() []LineState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	states := make([]LineState, len(d.states))
	copy(states, d.states)
	return states
}

// Caret returns the caret position.
func (d *MemDocument) Caret() (col, row int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.caretCol, d.caretRow
}

// Calls returns the mutation call counters.
func (d *MemDocument) Calls() CallCounts {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.calls
}

// EndsWithNewline reports whether the content carries a trailing terminator.
func (d *MemDocument) EndsWithNewline() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.finalNewline
}

// Write Operations

// Replace atomically replaces the region between (startCol, startRow) and
// (endCol, endRow) with text.
func (d *MemDocument) Replace(startCol, startRow, endCol, endRow int, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls.Replace++
	text = normalizeLineEndings(text)

	startRow, startCol = d.clamp(startRow, startCol)
	endRow, endCol = d.clamp(endRow, endCol)

	last := len(d.lines) - 1
	endsDoc := endRow == last && endCol >= len(d.lines[last])
	d.splice(startRow, startCol, endRow, endCol, text, endsDoc)
}

// Insert inserts text at (col, row).
func (d *MemDocument) Insert(col, row int, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls.Insert++
	if text == "" {
		return
	}
	text = normalizeLineEndings(text)

	// Whole-line insert: text ends with a terminator and lands at a line
	// start. Rows past the end append after the last line.
	if col == 0 && strings.HasSuffix(text, "\n") {
		parts := strings.Split(text[:len(text)-1], "\n")
		states := make([]LineState, len(parts))
		for i := range states {
			states[i] = StateChanged
		}

		if row < 0 {
			row = 0
		}
		if row >= len(d.lines) {
			d.lines = append(d.lines, parts...)
			d.states = append(d.states, states...)
			return
		}

		d.lines = append(d.lines[:row], append(parts, d.lines[row:]...)...)
		d.states = append(d.states[:row], append(states, d.states[row:]...)...)
		return
	}

	// Inline insert within a line.
	row, col = d.clamp(row, col)
	d.splice(row, col, row, col, text, false)
}

// Delete removes the region between (startCol, startRow) and (endCol, endRow).
func (d *MemDocument) Delete(startCol, startRow, endCol, endRow int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls.Delete++

	// Whole-line delete: both ends at column 0 of distinct rows.
	if startCol == 0 && endCol == 0 && endRow > startRow {
		if startRow < 0 {
			startRow = 0
		}
		if startRow >= len(d.lines) {
			return
		}
		if endRow > len(d.lines) {
			endRow = len(d.lines)
		}

		d.lines = append(d.lines[:startRow], d.lines[endRow:]...)
		d.states = append(d.states[:startRow], d.states[endRow:]...)

		if len(d.lines) == 0 {
			d.lines = []string{""}
			d.states = []LineState{StateChanged}
			d.finalNewline = false
		}
		return
	}

	startRow, startCol = d.clamp(startRow, startCol)
	endRow, endCol = d.clamp(endRow, endCol)
	endsDoc := endRow == len(d.lines)-1 && endCol >= len(d.lines[endRow])
	d.splice(startRow, startCol, endRow, endCol, "", endsDoc)
}

// SetLineState sets the state of the line at row.
func (d *MemDocument) SetLineState(row int, st LineState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls.SetState++
	if row < 0 || row >= len(d.states) {
		return
	}
	d.states[row] = st
}

// SetCaret moves the caret.
func (d *MemDocument) SetCaret(col, row int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls.SetCaret++
	d.caretCol = col
	d.caretRow = row
}

// NotifyChanged records a host refresh request.
func (d *MemDocument) NotifyChanged() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls.Notify++
}

// clamp bounds a (row, col) pair to valid line coordinates.
func (d *MemDocument) clamp(row, col int) (int, int) {
	if row < 0 {
		row = 0
	}
	if row >= len(d.lines) {
		row = len(d.lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if col > len(d.lines[row]) {
		col = len(d.lines[row])
	}
	return row, col
}

// splice replaces the region between (startRow, startCol) and
// (endRow, endCol) with text at the line level. When endsDoc is true the
// region extends through the trailing terminator, so text controls
// terminator presence.
func (d *MemDocument) splice(startRow, startCol, endRow, endCol int, text string, endsDoc bool) {
	prefix := d.lines[startRow][:startCol]
	suffix := d.lines[endRow][endCol:]
	segment := prefix + text + suffix

	if endsDoc {
		d.finalNewline = strings.HasSuffix(segment, "\n")
		if d.finalNewline {
			segment = segment[:len(segment)-1]
		}
	}

	parts := strings.Split(segment, "\n")
	states := make([]LineState, len(parts))
	for i := range states {
		states[i] = StateChanged
	}

	// A rewrite that leaves a line's content intact (terminator-only
	// adjustment) keeps the line's prior state.
	if len(parts) == 1 && startRow == endRow && parts[0] == d.lines[startRow] {
		states[0] = d.states[startRow]
	}

	d.lines = append(d.lines[:startRow], append(parts, d.lines[endRow+1:]...)...)
	d.states = append(d.states[:startRow], append(states, d.states[endRow+1:]...)...)
}
