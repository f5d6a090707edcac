package resolve

import "weft/internal/metadata"

// MemberKind classifies what a query is looking for.
type MemberKind uint8

const (
	KindMethod MemberKind = iota
	KindConstructor
	KindTypeInitializer
	KindGetter
	KindSetter
	KindEventAdd
	KindEventRemove
	KindEventRaise
	KindOperator
	KindConversion
	KindField
)

func (k MemberKind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindTypeInitializer:
		return "type initializer"
	case KindGetter:
		return "property getter"
	case KindSetter:
		return "property setter"
	case KindEventAdd:
		return "event add accessor"
	case KindEventRemove:
		return "event remove accessor"
	case KindEventRaise:
		return "event raise accessor"
	case KindOperator:
		return "operator"
	case KindConversion:
		return "conversion operator"
	case KindField:
		return "field"
	default:
		return "member"
	}
}

// Operator identifies a user-defined operator; its member name is
// synthesized as `op_<Kind>`.
type Operator uint8

const (
	OpAddition Operator = iota
	OpSubtraction
	OpMultiply
	OpDivision
	OpModulus
	OpEquality
	OpInequality
	OpLessThan
	OpGreaterThan
	OpUnaryNegation
	OpUnaryPlus
	OpLogicalNot
	OpOnesComplement
	OpIncrement
	OpDecrement
	OpImplicit
	OpExplicit
)

// MethodName is the synthesized member name of the operator.
func (o Operator) MethodName() string {
	return "op_" + o.suffix()
}

func (o Operator) suffix() string {
	switch o {
	case OpAddition:
		return "Addition"
	case OpSubtraction:
		return "Subtraction"
	case OpMultiply:
		return "Multiply"
	case OpDivision:
		return "Division"
	case OpModulus:
		return "Modulus"
	case OpEquality:
		return "Equality"
	case OpInequality:
		return "Inequality"
	case OpLessThan:
		return "LessThan"
	case OpGreaterThan:
		return "GreaterThan"
	case OpUnaryNegation:
		return "UnaryNegation"
	case OpUnaryPlus:
		return "UnaryPlus"
	case OpLogicalNot:
		return "LogicalNot"
	case OpOnesComplement:
		return "OnesComplement"
	case OpIncrement:
		return "Increment"
	case OpDecrement:
		return "Decrement"
	case OpImplicit:
		return "Implicit"
	case OpExplicit:
		return "Explicit"
	default:
		return "Unknown"
	}
}

// ConvDir is the direction of a conversion-operator query.
type ConvDir uint8

const (
	// ConvFrom matches conversions whose single parameter is the other
	// operand type.
	ConvFrom ConvDir = iota
	// ConvTo matches conversions whose return type is the other operand
	// type.
	ConvTo
)

// Query is an immutable member-match descriptor. Unconstrained parts match
// anything: a nil Return places no constraint on the return type, a nil
// Params slice none on the parameter list (an empty non-nil slice demands
// zero parameters), and GenericArity zero none on generic arity.
type Query struct {
	Kind MemberKind
	Name string
	// GenericArity, when positive, requires the candidate to declare exactly
	// that many generic parameters. Zero means unconstrained, so a query
	// cannot demand a non-generic candidate; non-generic members are instead
	// selected by name and signature.
	GenericArity int
	Return       *TypeDesc
	Params       []TypeDesc
	// Conversion-only: direction and the other operand type.
	ConvDir   ConvDir
	ConvOther *TypeDesc
}

// accepts applies the kind-specific predicates to one candidate. Descriptor
// resolution failures exclude the candidate, they are never errors.
func (q Query) accepts(c *Context, owner *metadata.TypeDef, m *metadata.MethodDef) bool {
	if m.Name != q.Name {
		return false
	}
	switch q.Kind {
	case KindConstructor:
		if !m.IsConstructor() || m.IsStatic() {
			return false
		}
	case KindTypeInitializer:
		if !m.IsConstructor() || !m.IsStatic() {
			return false
		}
	case KindGetter, KindSetter, KindEventAdd, KindEventRemove, KindEventRaise:
		if !m.IsSpecialName() {
			return false
		}
	case KindOperator, KindConversion:
		if !m.IsSpecialName() || !m.IsStatic() {
			return false
		}
	default:
		if m.IsConstructor() {
			return false
		}
	}
	if q.GenericArity > 0 && m.Arity() != q.GenericArity {
		return false
	}
	if q.Return != nil {
		want, ok := q.Return.resolve(c, owner, m)
		if !ok || !want.Identical(m.Return) {
			return false
		}
	}
	if q.Params != nil && !matchesSignature(c, owner, m, q.Params) {
		return false
	}
	if q.Kind == KindConversion && q.ConvOther != nil {
		other, ok := q.ConvOther.resolve(c, owner, m)
		if !ok {
			return false
		}
		switch q.ConvDir {
		case ConvFrom:
			if len(m.Params) != 1 || !other.Identical(m.Params[0].Type) {
				return false
			}
		case ConvTo:
			if !other.Identical(m.Return) {
				return false
			}
		}
	}
	return true
}

// matchesSignature decides parameter-list equality for one candidate. Equal
// arity is required first; each descriptor is then resolved in the context
// of this specific candidate and compared under full
// qualified-name-with-generic-argument identity.
func matchesSignature(c *Context, owner *metadata.TypeDef, m *metadata.MethodDef, descs []TypeDesc) bool {
	if len(m.Params) != len(descs) {
		return false
	}
	for i, d := range descs {
		want, ok := d.resolve(c, owner, m)
		if !ok {
			return false
		}
		if !want.Identical(m.Params[i].Type) {
			return false
		}
	}
	return true
}
