package diff

import (
	"strings"
	"testing"
)

// applyOpcodes reconstructs the new sequence from the old sequence and
// an edit script, verifying range bookkeeping along the way.
func applyOpcodes(t *testing.T, oldLines, newLines []string, ops []Opcode) []string {
	t.Helper()

	var result []string
	prevI, prevJ := 0, 0

	for _, op := range ops {
		if op.I1 != prevI || op.J1 != prevJ {
			t.Fatalf("opcode ranges not contiguous: %+v after (%d,%d)", op, prevI, prevJ)
		}
		prevI, prevJ = op.I2, op.J2

		switch op.Tag {
		case OpEqual:
			if op.I2-op.I1 != op.J2-op.J1 {
				t.Fatalf("equal opcode with mismatched spans: %+v", op)
			}
			for k := 0; k < op.I2-op.I1; k++ {
				if oldLines[op.I1+k] != newLines[op.J1+k] {
					t.Fatalf("equal opcode over unequal lines: %+v", op)
				}
			}
			result = append(result, oldLines[op.I1:op.I2]...)
		case OpReplace, OpInsert:
			result = append(result, newLines[op.J1:op.J2]...)
		case OpDelete:
			// Nothing carried over
		}
	}

	if prevI != len(oldLines) || prevJ != len(newLines) {
		t.Fatalf("opcodes do not cover inputs: ended at (%d,%d)", prevI, prevJ)
	}

	return result
}

func TestOpcodesReconstruction(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
	}{
		{"identical", "a b c", "a b c"},
		{"single replace", "a b c", "a x c"},
		{"insertion", "a b c", "a b d c"},
		{"deletion", "a b c d", "a c d"},
		{"prepend", "b c", "a b c"},
		{"append", "a b", "a b c"},
		{"replace all", "a b c", "x y z"},
		{"empty old", "", "a b"},
		{"empty new", "a b", ""},
		{"multi hunk", "a b c d e f g", "a x c e y z g"},
		{"shrink", "a b c d e f g h i j", "a j"},
		{"grow", "a b", "a x y z w b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			oldLines := fields(tc.old)
			newLines := fields(tc.new)

			ops := Opcodes(oldLines, newLines)
			got := applyOpcodes(t, oldLines, newLines, ops)

			if strings.Join(got, " ") != strings.Join(newLines, " ") {
				t.Errorf("reconstruction mismatch: got %v, want %v", got, newLines)
			}
		})
	}
}

func fields(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

func TestOpcodesIdentical(t *testing.T) {
	lines := []string{"a", "b", "c"}

	ops := Opcodes(lines, lines)

	if len(ops) != 1 {
		t.Fatalf("expected single opcode, got %d", len(ops))
	}

	if ops[0].Tag != OpEqual {
		t.Errorf("expected equal, got %v", ops[0].Tag)
	}
}

func TestOpcodesCoalescesReplace(t *testing.T) {
	oldLines := []string{"a", "b", "c"}
	newLines := []string{"a", "x", "y", "c"}

	ops := Opcodes(oldLines, newLines)

	sawReplace := false
	for _, op := range ops {
		if op.Tag == OpReplace {
			sawReplace = true
			if op.I2-op.I1 == 0 || op.J2-op.J1 == 0 {
				t.Errorf("replace with empty span: %+v", op)
			}
		}
	}

	if !sawReplace {
		t.Error("expected delete+insert runs to coalesce into replace")
	}
}

func TestOpcodesInsertOnly(t *testing.T) {
	oldLines := []string{"a", "c"}
	newLines := []string{"a", "b", "c"}

	ops := Opcodes(oldLines, newLines)

	for _, op := range ops {
		if op.Tag == OpDelete || op.Tag == OpReplace {
			t.Errorf("pure insertion produced %v", op.Tag)
		}
	}
}

func TestOpcodesMinimality(t *testing.T) {
	oldLines := []string{"a", "b", "c", "d"}
	newLines := []string{"a", "b", "x", "d"}

	ops := Opcodes(oldLines, newLines)

	equalCount := 0
	for _, op := range ops {
		if op.Tag == OpEqual {
			equalCount += op.I2 - op.I1
		}
	}

	if equalCount != 3 {
		t.Errorf("expected 3 equal lines, got %d", equalCount)
	}
}

func TestHeuristicAlignEqualSpansAreEqual(t *testing.T) {
	oldLines := []string{"a", "b", "c", "d", "e"}
	newLines := []string{"a", "x", "c", "y", "e"}

	ops := coalesce(heuristicAlign(oldLines, newLines))
	got := applyOpcodes(t, oldLines, newLines, ops)

	if strings.Join(got, " ") != strings.Join(newLines, " ") {
		t.Errorf("heuristic reconstruction mismatch: got %v", got)
	}
}

func TestHeuristicAlignReorderedLines(t *testing.T) {
	// Reordered content must never be claimed equal
	oldLines := []string{"b", "a"}
	newLines := []string{"a", "b"}

	ops := coalesce(heuristicAlign(oldLines, newLines))
	got := applyOpcodes(t, oldLines, newLines, ops)

	if strings.Join(got, " ") != "a b" {
		t.Errorf("expected a b, got %v", got)
	}
}

func TestOpTagString(t *testing.T) {
	if OpEqual.String() != "equal" || OpReplace.String() != "replace" ||
		OpDelete.String() != "delete" || OpInsert.String() != "insert" {
		t.Error("unexpected tag names")
	}
}
