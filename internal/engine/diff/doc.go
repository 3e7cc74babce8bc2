// Package diff computes line-level edit scripts between two texts.
//
// The core is a Myers O(ND) shortest-edit-script algorithm over line
// slices. Per-line edit operations are coalesced into opcodes in the
// familiar sequence-matcher shape: each opcode tags a contiguous old
// range [I1,I2) and new range [J1,J2) as equal, replace, delete, or
// insert, in order, covering both inputs completely.
//
// Inputs beyond a configurable line count fall back to a linear
// hash-matching heuristic that trades minimality for O(n+m) cost; the
// resulting script is still valid, just not guaranteed minimal.
package diff
