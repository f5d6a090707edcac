package metadata

import (
	"fmt"

	"fortio.org/safecast"

	"weft/internal/opcode"
)

// Instruction is one operation in a method's instruction stream. Offset is
// the byte offset the instruction occupies in the stream it was appended to.
type Instruction struct {
	Offset  uint32
	Op      opcode.Op
	Operand any
}

// Size is the encoded size in bytes: one opcode byte plus the operand width.
func (in *Instruction) Size() uint32 {
	return 1 + in.Op.OperandWidth()
}

func (in *Instruction) String() string {
	if in.Operand == nil {
		return fmt.Sprintf("IL_%04x: %s", in.Offset, in.Op)
	}
	return fmt.Sprintf("IL_%04x: %s %v", in.Offset, in.Op, in.Operand)
}

// DebugLocation is a source-position span anchored to one instruction. The
// per-body table of locations is ordered by anchor offset.
type DebugLocation struct {
	Anchor    *Instruction
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
	Document  string
}

// Offset is the anchor instruction's offset.
func (l *DebugLocation) Offset() uint32 {
	return l.Anchor.Offset
}

func (l *DebugLocation) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d @IL_%04x",
		l.Document, l.StartLine, l.StartCol, l.EndLine, l.EndCol, l.Anchor.Offset)
}

// Body is a method's instruction stream plus its debug-location table.
type Body struct {
	Instructions   []*Instruction
	DebugLocations []*DebugLocation
}

// Append adds an instruction at the end of the stream, assigning the next
// byte offset.
func (b *Body) Append(op opcode.Op, operand any) *Instruction {
	var offset uint32
	if n := len(b.Instructions); n > 0 {
		last := b.Instructions[n-1]
		offset = last.Offset + last.Size()
	}
	in := &Instruction{Offset: offset, Op: op, Operand: operand}
	b.Instructions = append(b.Instructions, in)
	return in
}

// Remove drops the instruction from the stream. Offsets of later
// instructions are left untouched; the writer reassigns them on persist.
func (b *Body) Remove(in *Instruction) bool {
	for i, cur := range b.Instructions {
		if cur == in {
			b.Instructions = append(b.Instructions[:i], b.Instructions[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the instruction is still part of the stream.
func (b *Body) Contains(in *Instruction) bool {
	for _, cur := range b.Instructions {
		if cur == in {
			return true
		}
	}
	return false
}

// HasDebugLocations reports whether any debug information is present.
func (b *Body) HasDebugLocations() bool {
	return b != nil && len(b.DebugLocations) > 0
}

// InstructionAt returns the instruction with the exact byte offset.
func (b *Body) InstructionAt(offset uint32) (*Instruction, bool) {
	for _, in := range b.Instructions {
		if in.Offset == offset {
			return in, true
		}
	}
	return nil, false
}

// IndexOf returns the position of the instruction in the stream, converted
// through safecast so the uint32 index is checked rather than truncated.
func (b *Body) IndexOf(in *Instruction) (uint32, bool) {
	for i, cur := range b.Instructions {
		if cur == in {
			idx, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("instruction index overflow: %w", err))
			}
			return idx, true
		}
	}
	return 0, false
}
