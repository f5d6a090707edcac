package resolve

import (
	"strconv"

	"weft/internal/metadata"
)

// DescKind classifies a lazily-resolved type descriptor.
type DescKind uint8

const (
	// DescExact wraps a concrete type reference.
	DescExact DescKind = iota
	// DescNamed resolves by full name at match time.
	DescNamed
	// DescMethodParam resolves to the candidate method's generic parameter.
	DescMethodParam
	// DescTypeParam resolves to the owning type's generic parameter.
	DescTypeParam
)

// TypeDesc is a lazily-resolved type expression. A descriptor may depend on
// the generic parameters of the member ultimately found, so it is resolved
// only against a concrete candidate; a descriptor that cannot resolve for a
// given candidate excludes that candidate from matching rather than failing
// the query.
type TypeDesc struct {
	Kind  DescKind
	Ref   *metadata.TypeRef
	Name  string
	Index uint32
}

// ExactType wraps a concrete type reference.
func ExactType(ref *metadata.TypeRef) TypeDesc {
	return TypeDesc{Kind: DescExact, Ref: ref}
}

// NamedType resolves the full name against the reachable modules when a
// candidate is tested.
func NamedType(fullName string) TypeDesc {
	return TypeDesc{Kind: DescNamed, Name: fullName}
}

// MethodTypeParam refers to the candidate method's generic parameter at the
// given position.
func MethodTypeParam(index uint32) TypeDesc {
	return TypeDesc{Kind: DescMethodParam, Index: index}
}

// OwnerTypeParam refers to the owning type's generic parameter at the given
// position.
func OwnerTypeParam(index uint32) TypeDesc {
	return TypeDesc{Kind: DescTypeParam, Index: index}
}

// resolve binds the descriptor against one candidate. owner is the resolved
// owning type, candidate the method under test (nil outside method queries).
// The second result is false when the descriptor does not resolve for this
// candidate.
func (d TypeDesc) resolve(c *Context, owner *metadata.TypeDef, candidate *metadata.MethodDef) (*metadata.TypeRef, bool) {
	switch d.Kind {
	case DescExact:
		if d.Ref == nil {
			return nil, false
		}
		return d.Ref, true
	case DescNamed:
		def := c.typeByFullName(d.Name)
		if def == nil {
			return nil, false
		}
		return def.Ref(), true
	case DescMethodParam:
		if candidate == nil || int(d.Index) >= len(candidate.GenericParams) {
			return nil, false
		}
		return metadata.MethodParamRef(candidate.GenericParams[d.Index], d.Index), true
	case DescTypeParam:
		if owner == nil || int(d.Index) >= len(owner.GenericParams) {
			return nil, false
		}
		return metadata.TypeParamRef(owner.GenericParams[d.Index], d.Index), true
	default:
		return nil, false
	}
}

// String renders the descriptor for query signatures in error messages.
func (d TypeDesc) String() string {
	switch d.Kind {
	case DescExact:
		return d.Ref.FullName()
	case DescNamed:
		return d.Name
	case DescMethodParam:
		return "T" + strconv.FormatUint(uint64(d.Index), 10)
	case DescTypeParam:
		return "!" + strconv.FormatUint(uint64(d.Index), 10)
	default:
		return "?"
	}
}
