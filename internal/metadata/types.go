package metadata

import (
	"strconv"
	"strings"
)

// TypeRefKind classifies how a type reference names its target.
type TypeRefKind uint8

const (
	// RefNamed points at a declared type by namespace, name and scope.
	RefNamed TypeRefKind = iota
	// RefTypeParam points at a generic parameter of the declaring type.
	RefTypeParam
	// RefMethodParam points at a generic parameter of the method itself.
	RefMethodParam
)

func (k TypeRefKind) String() string {
	switch k {
	case RefNamed:
		return "named"
	case RefTypeParam:
		return "type-param"
	case RefMethodParam:
		return "method-param"
	default:
		return "invalid"
	}
}

// TypeRef identifies a type, possibly declared in another module's scope.
// A ref with a non-empty Args list is a generic instantiation of the named
// type. Generic-parameter refs carry the parameter index and a display name;
// they are scope-free.
type TypeRef struct {
	Kind      TypeRefKind
	Namespace string
	Name      string
	Scope     string
	Args      []*TypeRef
	Index     uint32
	// Sentinel marks the boundary parameter of a vararg call site: the first
	// optional parameter's type carries it.
	Sentinel bool
}

// NamedRef builds a plain reference to a declared type.
func NamedRef(namespace, name, scope string) *TypeRef {
	return &TypeRef{Kind: RefNamed, Namespace: namespace, Name: name, Scope: scope}
}

// TypeParamRef builds a reference to the declaring type's generic parameter.
func TypeParamRef(name string, index uint32) *TypeRef {
	return &TypeRef{Kind: RefTypeParam, Name: name, Index: index}
}

// MethodParamRef builds a reference to a method's own generic parameter.
func MethodParamRef(name string, index uint32) *TypeRef {
	return &TypeRef{Kind: RefMethodParam, Name: name, Index: index}
}

// Instantiated returns a generic instantiation of the receiver with the given
// type arguments. The receiver is not modified.
func (r *TypeRef) Instantiated(args ...*TypeRef) *TypeRef {
	out := *r
	out.Args = args
	return &out
}

// WithSentinel returns a copy of the ref carrying the vararg boundary marker.
func (r *TypeRef) WithSentinel() *TypeRef {
	out := *r
	out.Sentinel = true
	return &out
}

// FullName renders the reference the way resolver messages and the inspector
// print types: `Ns.Name`, `Name`, or `Ns.Name<Arg, Arg>`.
func (r *TypeRef) FullName() string {
	if r == nil {
		return "<nil>"
	}
	if r.Kind != RefNamed {
		return r.Name
	}
	var sb strings.Builder
	if r.Namespace != "" {
		sb.WriteString(r.Namespace)
		sb.WriteByte('.')
	}
	sb.WriteString(r.Name)
	if len(r.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range r.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.FullName())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

// identityKey is the comparison form: full qualified name with generic
// arguments plus declaring scope. Generic parameters compare positionally,
// not by display name.
func (r *TypeRef) identityKey() string {
	switch r.Kind {
	case RefTypeParam:
		return "!" + strconv.FormatUint(uint64(r.Index), 10)
	case RefMethodParam:
		return "!!" + strconv.FormatUint(uint64(r.Index), 10)
	}
	var sb strings.Builder
	sb.WriteString(r.Scope)
	sb.WriteByte('|')
	if r.Namespace != "" {
		sb.WriteString(r.Namespace)
		sb.WriteByte('.')
	}
	sb.WriteString(r.Name)
	if len(r.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range r.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(a.identityKey())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

// Identical reports whether two refs name the same type under full
// qualified-name-with-generic-argument identity. Refs from different scopes
// are never identical unless scope mapping already normalized them.
func (r *TypeRef) Identical(other *TypeRef) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.identityKey() == other.identityKey()
}

// TypeDef is a declared type with its member lists.
type TypeDef struct {
	Namespace     string
	Name          string
	Module        *Module
	GenericParams []string
	Methods       []*MethodDef
	Fields        []*FieldDef
	Properties    []*PropertyDef
	Events        []*EventDef
}

// FullName renders `Ns.Name` (no generic arguments; defs are never
// instantiated).
func (d *TypeDef) FullName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// Ref builds a reference to the definition in its own declaring scope.
func (d *TypeDef) Ref() *TypeRef {
	scope := ""
	if d.Module != nil {
		scope = d.Module.Scope
	}
	return NamedRef(d.Namespace, d.Name, scope)
}
