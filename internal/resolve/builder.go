package resolve

import (
	"fmt"

	"weft/internal/metadata"
)

// Builder wraps a resolved method reference for emission into a rewritten
// instruction stream. It is immutable except for the two explicit one-shot
// mutations, each of which replaces the backing reference wholesale with a
// freshly imported one; a failed mutation leaves the prior state untouched.
type Builder struct {
	ctx *Context
	ref *metadata.MethodRef
}

// FromRef wraps an already-resolved reference, e.g. a delegate's target
// method. References to compiler-synthesized members are rejected: closure
// and instance-forwarding transformations give them shapes no caller can
// reason about.
func (c *Context) FromRef(ref *metadata.MethodRef) (*Builder, error) {
	if ref.IsSynthesized() {
		return nil, &SyntheticMemberError{Name: ref.Name}
	}
	return &Builder{ctx: c, ref: c.Dest.ImportMethodRef(ref)}, nil
}

// Build returns the current backing reference. It may be called any number
// of times and always reflects the latest mutation.
func (b *Builder) Build() *metadata.MethodRef {
	return b.ref
}

// InstantiateGeneric instantiates the generic method with concrete type
// arguments and re-imports the result as the new backing reference.
func (b *Builder) InstantiateGeneric(args ...*metadata.TypeRef) error {
	const op = "instantiate generic method"
	if b.ref.GenericParamCount == 0 {
		return &InvalidMutationError{Op: op, Reason: fmt.Sprintf("method %q has no generic parameters", b.ref.FullName())}
	}
	if b.ref.IsGenericInstance() {
		return &InvalidMutationError{Op: op, Reason: fmt.Sprintf("method %q is already instantiated", b.ref.FullName())}
	}
	if len(args) == 0 {
		return &InvalidMutationError{Op: op, Reason: "no type arguments supplied"}
	}
	if uint32(len(args)) != b.ref.GenericParamCount {
		return &InvalidMutationError{Op: op, Reason: fmt.Sprintf("method %q declares %d generic parameters, got %d type arguments",
			b.ref.FullName(), b.ref.GenericParamCount, len(args))}
	}
	b.ref = b.ctx.Dest.ImportMethodRef(b.ref.Instantiate(args))
	return nil
}

// SetOptionalParams appends optional parameters to a vararg call reference.
// The first appended parameter's type carries the sentinel marker; the
// cloned, extended reference is re-imported as the new backing reference.
func (b *Builder) SetOptionalParams(types ...*metadata.TypeRef) error {
	const op = "append optional parameters"
	if b.ref.Call != metadata.CallVarArg {
		return &InvalidMutationError{Op: op, Reason: fmt.Sprintf("method %q does not use the vararg calling convention", b.ref.FullName())}
	}
	if b.ref.HasVarArgSentinel() {
		return &InvalidMutationError{Op: op, Reason: fmt.Sprintf("method %q already has optional parameters attached", b.ref.FullName())}
	}
	if len(types) == 0 {
		return &InvalidMutationError{Op: op, Reason: "no parameter types supplied"}
	}
	out := b.ref.Clone()
	for i, t := range types {
		if i == 0 {
			t = t.WithSentinel()
		}
		out.Params = append(out.Params, &metadata.Param{Type: t})
	}
	b.ref = b.ctx.Dest.ImportMethodRef(out)
	return nil
}
