package resolve_test

import (
	"errors"
	"testing"

	"weft/internal/resolve"
)

func TestFieldResolution(t *testing.T) {
	f := newFixture()

	ref, err := f.ctx.Field(f.calcRef, "count")
	if err != nil {
		t.Fatalf("Field(count): %v", err)
	}
	if !ref.Type.Identical(f.intRef) {
		t.Errorf("field type = %s, want System.Int32", ref.Type.FullName())
	}
	if got := ref.FullName(); got != "Num.Calc::count" {
		t.Errorf("FullName() = %q", got)
	}
	if len(f.dest.FieldRefs) != 1 {
		t.Errorf("field reference table has %d entries, want 1", len(f.dest.FieldRefs))
	}
}

func TestFieldNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.ctx.Field(f.calcRef, "missing")
	var notFound *resolve.MemberNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected MemberNotFoundError, got %v", err)
	}
}

func TestFieldAmbiguous(t *testing.T) {
	f := newFixture()

	_, err := f.ctx.Field(f.dataRef, "twin")
	var ambiguous *resolve.AmbiguousMemberError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousMemberError, got %v", err)
	}
}

func TestFieldThroughGenericInstanceKeepsOwner(t *testing.T) {
	f := newFixture()
	boxInt := f.boxRef.Instantiated(f.intRef)

	ref, err := f.ctx.Field(boxInt, "Value")
	if err != nil {
		t.Fatalf("Field through instantiation: %v", err)
	}
	if !ref.DeclaringType.Identical(boxInt) {
		t.Errorf("declaring type = %s, want the requested instantiation", ref.DeclaringType.FullName())
	}
	if got := ref.FullName(); got != "Num.Box<System.Int32>::Value" {
		t.Errorf("FullName() = %q", got)
	}
}
