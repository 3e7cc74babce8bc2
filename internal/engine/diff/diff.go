package diff

// DefaultMaxLines is the maximum input size for the Myers algorithm.
// Larger inputs use the linear heuristic instead.
const DefaultMaxLines = 10000

// OpTag identifies the kind of an opcode.
type OpTag uint8

const (
	// OpEqual tags lines present in both sequences.
	OpEqual OpTag = iota

	// OpReplace tags old lines substituted by new lines.
	OpReplace

	// OpDelete tags old lines absent from the new sequence.
	OpDelete

	// OpInsert tags new lines absent from the old sequence.
	OpInsert
)

// String returns a human-readable tag name.
func (t OpTag) String() string {
	switch t {
	case OpEqual:
		return "equal"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Opcode describes one edit operation spanning the contiguous old-line
// range [I1,I2) and new-line range [J1,J2).
type Opcode struct {
	Tag OpTag
	I1  int
	I2  int
	J1  int
	J2  int
}

// elemKind is the kind of a single-line edit operation.
type elemKind uint8

const (
	elemEqual elemKind = iota
	elemDelete
	elemInsert
)

// elemOp is a single-line edit operation produced by the alignment pass.
type elemOp struct {
	kind     elemKind
	oldIndex int
	newIndex int
}

// Opcodes computes the edit script between oldLines and newLines.
// Opcodes are returned in order and cover both inputs completely;
// adjacent delete and insert runs are merged into a single replace.
func Opcodes(oldLines, newLines []string) []Opcode {
	var ops []elemOp
	if len(oldLines) > DefaultMaxLines || len(newLines) > DefaultMaxLines {
		ops = heuristicAlign(oldLines, newLines)
	} else {
		ops = myersAlign(oldLines, newLines)
	}
	return coalesce(ops)
}

// coalesce converts single-line operations into range opcodes.
func coalesce(ops []elemOp) []Opcode {
	var result []Opcode
	ai, bj := 0, 0

	i := 0
	for i < len(ops) {
		j := i
		if ops[i].kind == elemEqual {
			for j < len(ops) && ops[j].kind == elemEqual {
				j++
			}
			n := j - i
			result = append(result, Opcode{OpEqual, ai, ai + n, bj, bj + n})
			ai += n
			bj += n
		} else {
			dels, ins := 0, 0
			for j < len(ops) && ops[j].kind != elemEqual {
				if ops[j].kind == elemDelete {
					dels++
				} else {
					ins++
				}
				j++
			}

			tag := OpReplace
			if dels == 0 {
				tag = OpInsert
			} else if ins == 0 {
				tag = OpDelete
			}
			result = append(result, Opcode{tag, ai, ai + dels, bj, bj + ins})
			ai += dels
			bj += ins
		}
		i = j
	}

	return result
}

// myersAlign implements the Myers shortest-edit-script algorithm using a
// slice-based V vector with trace backtracking.
func myersAlign(oldLines, newLines []string) []elemOp {
	n := len(oldLines)
	m := len(newLines)

	// Trivial cases
	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]elemOp, m)
		for i := 0; i < m; i++ {
			ops[i] = elemOp{kind: elemInsert, newIndex: i}
		}
		return ops
	}
	if m == 0 {
		ops := make([]elemOp, n)
		for i := 0; i < n; i++ {
			ops[i] = elemOp{kind: elemDelete, oldIndex: i}
		}
		return ops
	}

	maxD := n + m
	offset := maxD // V[-max..max] maps to slice[0..2*max]
	v := make([]int, 2*maxD+1)
	v[offset+1] = 0

	var trace [][]int

outer:
	for d := 0; d <= maxD; d++ {
		// Save state from the previous iteration before processing this d
		vCopy := make([]int, len(v))
		copy(vCopy, v)
		trace = append(trace, vCopy)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}

			y := x - k

			// Extend diagonal over equal lines
			for x < n && y < m && oldLines[x] == newLines[y] {
				x++
				y++
			}

			v[offset+k] = x

			if x >= n && y >= m {
				vFinal := make([]int, len(v))
				copy(vFinal, v)
				trace = append(trace, vFinal)
				break outer
			}
		}
	}

	return backtrack(trace, n, m, offset)
}

// backtrack reconstructs the edit script from the recorded V vectors.
func backtrack(trace [][]int, n, m, offset int) []elemOp {
	if len(trace) == 0 {
		return nil
	}

	x := n
	y := m
	var ops []elemOp

	for d := len(trace) - 2; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := v[offset+prevK]
		prevY := prevX - prevK

		// Walk back diagonals (equal lines)
		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, elemOp{kind: elemEqual, oldIndex: x, newIndex: y})
		}

		if d > 0 {
			if x > prevX {
				x--
				ops = append(ops, elemOp{kind: elemDelete, oldIndex: x})
			} else if y > prevY {
				y--
				ops = append(ops, elemOp{kind: elemInsert, newIndex: y})
			}
		}
	}

	// Ops were built backwards
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}

	return ops
}

// heuristicAlign provides a prefix/suffix trim diff for large inputs.
// Less optimal than Myers but uses O(n+m) time and memory, and the
// equal spans it emits are always genuinely equal.
func heuristicAlign(oldLines, newLines []string) []elemOp {
	n := len(oldLines)
	m := len(newLines)

	// Common prefix
	prefix := 0
	for prefix < n && prefix < m && oldLines[prefix] == newLines[prefix] {
		prefix++
	}

	// Common suffix, not overlapping the prefix
	suffix := 0
	for suffix < n-prefix && suffix < m-prefix &&
		oldLines[n-1-suffix] == newLines[m-1-suffix] {
		suffix++
	}

	var ops []elemOp
	for i := 0; i < prefix; i++ {
		ops = append(ops, elemOp{kind: elemEqual, oldIndex: i, newIndex: i})
	}
	for i := prefix; i < n-suffix; i++ {
		ops = append(ops, elemOp{kind: elemDelete, oldIndex: i})
	}
	for j := prefix; j < m-suffix; j++ {
		ops = append(ops, elemOp{kind: elemInsert, newIndex: j})
	}
	for i := 0; i < suffix; i++ {
		ops = append(ops, elemOp{
			kind:     elemEqual,
			oldIndex: n - suffix + i,
			newIndex: m - suffix + i,
		})
	}

	return ops
}
