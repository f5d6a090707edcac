package metadata

import "strings"

// MemberFlags encode member attributes the resolver filters on.
type MemberFlags uint16

const (
	// FlagStatic marks a member with no instance receiver.
	FlagStatic MemberFlags = 1 << iota
	// FlagSpecialName marks accessor and operator methods.
	FlagSpecialName
	// FlagConstructor marks instance and type constructors.
	FlagConstructor
)

// Strings returns a slice of textual flag labels.
func (f MemberFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 3)
	if f&FlagStatic != 0 {
		labels = append(labels, "static")
	}
	if f&FlagSpecialName != 0 {
		labels = append(labels, "special-name")
	}
	if f&FlagConstructor != 0 {
		labels = append(labels, "constructor")
	}
	return labels
}

// CallConv distinguishes fixed-arity calls from vararg call sites.
type CallConv uint8

const (
	// CallDefault is the fixed-arity calling convention.
	CallDefault CallConv = iota
	// CallVarArg allows optional parameters appended at the call site.
	CallVarArg
)

func (c CallConv) String() string {
	switch c {
	case CallVarArg:
		return "vararg"
	default:
		return "default"
	}
}

// synthesizedPrefix starts every compiler-generated member name. Such names
// are unspeakable in the source language, so the prefix is unambiguous.
const synthesizedPrefix = "<"

// IsSynthesizedName reports whether the member name belongs to a
// compiler-generated member.
func IsSynthesizedName(name string) bool {
	return strings.HasPrefix(name, synthesizedPrefix)
}

// Names reserved for constructors in the member tables.
const (
	CtorName     = ".ctor"
	TypeInitName = ".cctor"
)

// Param is a declared parameter: a name (may be empty) and a type.
type Param struct {
	Name string
	Type *TypeRef
}

// MethodDef is a declared method, including constructors and accessors.
type MethodDef struct {
	Name          string
	Flags         MemberFlags
	Call          CallConv
	GenericParams []string
	Return        *TypeRef
	Params        []*Param
	Body          *Body
	DeclaringType *TypeDef
}

// IsStatic reports whether the method has no instance receiver.
func (m *MethodDef) IsStatic() bool { return m.Flags&FlagStatic != 0 }

// IsSpecialName reports whether the method is an accessor or operator.
func (m *MethodDef) IsSpecialName() bool { return m.Flags&FlagSpecialName != 0 }

// IsConstructor reports whether the method is an instance or type constructor.
func (m *MethodDef) IsConstructor() bool { return m.Flags&FlagConstructor != 0 }

// Arity is the declared generic parameter count.
func (m *MethodDef) Arity() int { return len(m.GenericParams) }

// FieldDef is a declared field.
type FieldDef struct {
	Name          string
	Flags         MemberFlags
	Type          *TypeRef
	DeclaringType *TypeDef
}

// PropertyDef pairs a property with its accessor methods. Accessors also
// appear in the declaring type's method list under `get_`/`set_` names.
type PropertyDef struct {
	Name   string
	Type   *TypeRef
	Getter *MethodDef
	Setter *MethodDef
}

// EventDef pairs an event with its accessor methods. Accessors also appear
// in the declaring type's method list under `add_`/`remove_`/`raise_` names.
type EventDef struct {
	Name   string
	Type   *TypeRef
	Add    *MethodDef
	Remove *MethodDef
	Raise  *MethodDef
}
