package debugloc_test

import (
	"testing"

	"weft/internal/debugloc"
	"weft/internal/metadata"
	"weft/internal/opcode"
)

// newBody builds an instruction stream with one debug location per marked
// instruction index.
func newBody(t *testing.T, instrCount int, located map[int][4]uint32) *metadata.Body {
	t.Helper()
	body := &metadata.Body{}
	for i := 0; i < instrCount; i++ {
		body.Append(opcode.Nop, nil)
	}
	for i := 0; i < instrCount; i++ {
		span, ok := located[i]
		if !ok {
			continue
		}
		body.DebugLocations = append(body.DebugLocations, &metadata.DebugLocation{
			Anchor:    body.Instructions[i],
			StartLine: span[0],
			StartCol:  span[1],
			EndLine:   span[2],
			EndCol:    span[3],
			Document:  "main.src",
		})
	}
	return body
}

func TestLocate(t *testing.T) {
	body := newBody(t, 6, map[int][4]uint32{
		1: {10, 1, 10, 5},
		3: {12, 1, 12, 9},
	})
	r := debugloc.NewRemapper(body, true)

	tests := []struct {
		name     string
		instr    *metadata.Instruction
		wantLine uint32
		wantNil  bool
	}{
		{name: "exact_anchor", instr: body.Instructions[1], wantLine: 10},
		{name: "between_anchors", instr: body.Instructions[2], wantLine: 10},
		{name: "after_last", instr: body.Instructions[5], wantLine: 12},
		{name: "before_first", instr: body.Instructions[0], wantNil: true},
		{name: "nil_instruction", instr: nil, wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := r.Locate(tt.instr)
			if tt.wantNil {
				if loc != nil {
					t.Errorf("Locate() = %v, want nil", loc)
				}
				return
			}
			if loc == nil {
				t.Fatal("Locate() = nil")
			}
			if loc.StartLine != tt.wantLine {
				t.Errorf("StartLine = %d, want %d", loc.StartLine, tt.wantLine)
			}
		})
	}
}

func TestPropagateCopiesSpan(t *testing.T) {
	body := newBody(t, 4, map[int][4]uint32{
		1: {10, 1, 10, 5},
		3: {20, 1, 20, 3},
	})
	r := debugloc.NewRemapper(body, true)

	out := body.Append(opcode.Ret, nil)
	loc := r.Propagate(body.Instructions[2], out)
	if loc == nil {
		t.Fatal("Propagate returned nil")
	}
	if loc.Anchor != out {
		t.Error("new location must anchor the output instruction")
	}
	if loc.StartLine != 10 || loc.StartCol != 1 || loc.EndLine != 10 || loc.EndCol != 5 {
		t.Errorf("span = %d:%d-%d:%d, want 10:1-10:5", loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol)
	}
	if loc.Document != "main.src" {
		t.Errorf("document = %q", loc.Document)
	}

	// Inserted immediately after the nearest preceding entry, before the
	// offset-20 location.
	if body.DebugLocations[1] != loc {
		t.Error("propagated location inserted at the wrong position")
	}
	if body.DebugLocations[2].StartLine != 20 {
		t.Error("later location displaced")
	}
}

func TestPropagateNoOps(t *testing.T) {
	body := newBody(t, 3, map[int][4]uint32{0: {1, 1, 1, 2}})
	out := body.Append(opcode.Ret, nil)

	t.Run("disabled_generation", func(t *testing.T) {
		r := debugloc.NewRemapper(body, false)
		if r.Propagate(body.Instructions[1], out) != nil {
			t.Error("disabled generation must not create locations")
		}
	})

	t.Run("nil_instructions", func(t *testing.T) {
		r := debugloc.NewRemapper(body, true)
		if r.Propagate(nil, out) != nil || r.Propagate(body.Instructions[1], nil) != nil {
			t.Error("missing instructions must not create locations")
		}
	})

	t.Run("no_debug_information", func(t *testing.T) {
		bare := &metadata.Body{}
		bare.Append(opcode.Nop, nil)
		r := debugloc.NewRemapper(bare, true)
		if r.Propagate(bare.Instructions[0], bare.Instructions[0]) != nil {
			t.Error("a method without debug information must stay without")
		}
	})
}

func TestMergeWithPrevious(t *testing.T) {
	t.Run("extends_same_document", func(t *testing.T) {
		body := newBody(t, 4, map[int][4]uint32{
			0: {10, 1, 10, 5},
			2: {11, 1, 11, 7},
		})
		r := debugloc.NewRemapper(body, true)
		later := body.DebugLocations[1]

		r.MergeWithPrevious(later)
		if len(body.DebugLocations) != 1 {
			t.Fatalf("table length = %d, want 1", len(body.DebugLocations))
		}
		kept := body.DebugLocations[0]
		if kept.EndLine != 11 || kept.EndCol != 7 {
			t.Errorf("end span = %d:%d, want 11:7", kept.EndLine, kept.EndCol)
		}
		if kept.StartLine != 10 {
			t.Error("start span must stay on the earlier entry")
		}
	})

	t.Run("first_entry_noop", func(t *testing.T) {
		body := newBody(t, 2, map[int][4]uint32{0: {10, 1, 10, 5}})
		r := debugloc.NewRemapper(body, true)
		r.MergeWithPrevious(body.DebugLocations[0])
		if len(body.DebugLocations) != 1 {
			t.Error("merging the first entry must be a no-op")
		}
	})

	t.Run("document_boundary_noop", func(t *testing.T) {
		body := newBody(t, 3, map[int][4]uint32{
			0: {10, 1, 10, 5},
			1: {3, 1, 3, 4},
		})
		body.DebugLocations[1].Document = "other.src"
		r := debugloc.NewRemapper(body, true)
		r.MergeWithPrevious(body.DebugLocations[1])
		if len(body.DebugLocations) != 2 {
			t.Error("merging across documents must be a no-op")
		}
	})

	t.Run("nil_noop", func(t *testing.T) {
		body := newBody(t, 2, map[int][4]uint32{0: {10, 1, 10, 5}})
		r := debugloc.NewRemapper(body, true)
		r.MergeWithPrevious(nil)
		if len(body.DebugLocations) != 1 {
			t.Error("nil location must be a no-op")
		}
	})
}

func TestFinalizePrunesDanglingLocations(t *testing.T) {
	body := newBody(t, 4, map[int][4]uint32{
		0: {10, 1, 10, 5},
		2: {12, 1, 12, 5},
	})
	r := debugloc.NewRemapper(body, true)

	kept := body.Append(opcode.Nop, nil)
	dropped := body.Append(opcode.Nop, nil)
	if r.Propagate(body.Instructions[0], kept) == nil {
		t.Fatal("propagate to kept failed")
	}
	if r.Propagate(body.Instructions[2], dropped) == nil {
		t.Fatal("propagate to dropped failed")
	}
	if len(body.DebugLocations) != 4 {
		t.Fatalf("table length = %d, want 4", len(body.DebugLocations))
	}

	body.Remove(dropped)
	r.Finalize()

	if len(body.DebugLocations) != 3 {
		t.Fatalf("table length after finalize = %d, want 3", len(body.DebugLocations))
	}
	for _, loc := range body.DebugLocations {
		if loc.Anchor == dropped {
			t.Error("dangling location survived finalize")
		}
	}
	// Pre-existing locations are never pruned, even when their anchors are
	// gone.
	body.Remove(body.Instructions[0])
	r2 := debugloc.NewRemapper(body, true)
	r2.Finalize()
	if len(body.DebugLocations) != 3 {
		t.Error("finalize must not touch locations it did not create")
	}
}

func TestFinalizeDisabledIsNoop(t *testing.T) {
	body := newBody(t, 2, map[int][4]uint32{0: {10, 1, 10, 5}})
	r := debugloc.NewRemapper(body, false)
	r.Finalize()
	if len(body.DebugLocations) != 1 {
		t.Error("disabled finalize must leave the table alone")
	}
}
