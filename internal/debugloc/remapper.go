// Package debugloc keeps a method's debug-location table consistent while
// the instruction stream is rewritten, so debuggers and stack traces stay
// accurate after instructions are inserted, merged or removed.
package debugloc

import "weft/internal/metadata"

// Remapper owns one method's ordered debug-location table for the duration
// of that method's transformation. Create one per method, call Finalize
// exactly once after all instruction edits, then discard it. Not safe for
// concurrent use.
type Remapper struct {
	body *metadata.Body
	// emit is the session switch for debug-location generation.
	emit bool
	// hasDebug is captured at construction: a method without debug
	// information turns every operation into a no-op.
	hasDebug bool
	// created maps locations built by Propagate to their anchor
	// instruction. Append-only during propagation, read by Finalize.
	created map[*metadata.DebugLocation]*metadata.Instruction
}

// NewRemapper wraps a method body. emit false disables debug-location
// generation for this run.
func NewRemapper(body *metadata.Body, emit bool) *Remapper {
	return &Remapper{
		body:     body,
		emit:     emit,
		hasDebug: body.HasDebugLocations(),
		created:  make(map[*metadata.DebugLocation]*metadata.Instruction),
	}
}

// Locate returns the last original-side debug location whose anchor offset
// is at or before the instruction's offset, or nil if the instruction is nil
// or precedes every location. Locations created by Propagate anchor
// output-side instructions and are skipped: only the original table drives
// lookup.
func (r *Remapper) Locate(in *metadata.Instruction) *metadata.DebugLocation {
	if in == nil || !r.hasDebug {
		return nil
	}
	var found *metadata.DebugLocation
	for _, loc := range r.body.DebugLocations {
		if _, created := r.created[loc]; created {
			continue
		}
		if loc.Offset() > in.Offset {
			break
		}
		found = loc
	}
	return found
}

// Propagate derives a debug location for a transformed instruction from the
// original one it replaces or extends: the enclosing original location's
// span and document are copied onto a new location anchored to out. The new
// location is inserted immediately after the last table entry at or before
// the original location's offset, preserving offset order, and is recorded
// for pruning at Finalize. Returns nil when either instruction is missing or
// generation is disabled.
func (r *Remapper) Propagate(orig, out *metadata.Instruction) *metadata.DebugLocation {
	if orig == nil || out == nil || !r.emit || !r.hasDebug {
		return nil
	}
	src := r.Locate(orig)
	if src == nil {
		return nil
	}
	loc := &metadata.DebugLocation{
		Anchor:    out,
		StartLine: src.StartLine,
		StartCol:  src.StartCol,
		EndLine:   src.EndLine,
		EndCol:    src.EndCol,
		Document:  src.Document,
	}
	r.insertAfterOffset(loc, src.Offset())
	r.created[loc] = out
	return loc
}

// insertAfterOffset places loc directly after the last entry whose anchor
// offset is at or before the given offset, appending when no such entry
// exists.
func (r *Remapper) insertAfterOffset(loc *metadata.DebugLocation, offset uint32) {
	table := r.body.DebugLocations
	at := len(table)
	for i := len(table) - 1; i >= 0; i-- {
		if table[i].Offset() <= offset {
			at = i + 1
			break
		}
		at = i
	}
	table = append(table, nil)
	copy(table[at+1:], table[at:])
	table[at] = loc
	r.body.DebugLocations = table
}

// MergeWithPrevious folds the location into the table entry directly before
// it: if both share a source document, the earlier entry's end position is
// extended to cover loc and loc is removed. The first table entry, a nil
// location, or a document boundary make this a no-op. Used when a
// transformation's trailing instructions belong to the location before them.
func (r *Remapper) MergeWithPrevious(loc *metadata.DebugLocation) {
	if loc == nil || !r.hasDebug {
		return
	}
	table := r.body.DebugLocations
	idx := -1
	for i, cur := range table {
		if cur == loc {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return
	}
	prev := table[idx-1]
	if prev.Document != loc.Document {
		return
	}
	prev.EndLine = loc.EndLine
	prev.EndCol = loc.EndCol
	r.body.DebugLocations = append(table[:idx], table[idx+1:]...)
	delete(r.created, loc)
}

// Finalize prunes debug locations left dangling by instruction deletions:
// every location created by Propagate whose anchor instruction is no longer
// in the final instruction stream is removed. Pre-existing locations are
// never touched. Run once, after all insertions and deletions for the
// method are done, because pruning relies on final stream membership.
func (r *Remapper) Finalize() {
	if !r.emit || !r.hasDebug {
		return
	}
	table := r.body.DebugLocations
	for i := len(table) - 1; i >= 0; i-- {
		anchor, ok := r.created[table[i]]
		if !ok {
			continue
		}
		if !r.body.Contains(anchor) {
			table = append(table[:i], table[i+1:]...)
		}
	}
	r.body.DebugLocations = table
}
