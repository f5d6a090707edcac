package resolve

import "fmt"

// UnresolvedTypeError reports a type reference that could not be resolved in
// the destination module or any referenced source module.
type UnresolvedTypeError struct {
	Name string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("type %q could not be resolved in any reachable module", e.Name)
}

// MemberNotFoundError reports a member query that matched zero candidates.
type MemberNotFoundError struct {
	Kind      MemberKind
	Owner     string
	Signature string
	// noDefaultCtor selects the dedicated message for a zero-parameter
	// constructor query.
	noDefaultCtor bool
}

func (e *MemberNotFoundError) Error() string {
	if e.noDefaultCtor {
		return fmt.Sprintf("type %q has no default constructor", e.Owner)
	}
	return fmt.Sprintf("no %s matching %q found on type %q", e.Kind, e.Signature, e.Owner)
}

// AmbiguousMemberError reports a member query that matched more than one
// candidate.
type AmbiguousMemberError struct {
	Kind      MemberKind
	Owner     string
	Signature string
}

func (e *AmbiguousMemberError) Error() string {
	return fmt.Sprintf("multiple %ss matching %q found on type %q", e.Kind, e.Signature, e.Owner)
}

// SyntheticMemberError reports an attempt to build a reference to a
// compiler-synthesized member. Such members are implementation details of
// the original compiler: their arity and shape may differ between optimized
// and unoptimized builds and between compiler versions.
type SyntheticMemberError struct {
	Name string
}

func (e *SyntheticMemberError) Error() string {
	return fmt.Sprintf("cannot reference compiler-synthesized member %q: its shape is not a stable contract", e.Name)
}

// InvalidMutationError reports a builder mutation attempted from an
// incompatible state. The builder's prior state is left untouched.
type InvalidMutationError struct {
	Op     string
	Reason string
}

func (e *InvalidMutationError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Op, e.Reason)
}
