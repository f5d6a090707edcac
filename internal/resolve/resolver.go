package resolve

import "weft/internal/metadata"

// resolveMethod runs one query against the owning type's method list and
// reduces the match set: exactly one candidate succeeds, zero is a not-found
// error, more than one an ambiguity error.
func (c *Context) resolveMethod(owner *metadata.TypeRef, q Query) (*metadata.MethodDef, *metadata.TypeDef, error) {
	def, err := c.ResolveRequiredType(owner)
	if err != nil {
		return nil, nil, err
	}
	var matches []*metadata.MethodDef
	for _, m := range def.Methods {
		if q.accepts(c, def, m) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], def, nil
	case 0:
		notFound := &MemberNotFoundError{
			Kind:      q.Kind,
			Owner:     def.FullName(),
			Signature: renderQuery(q),
		}
		if q.Kind == KindConstructor && q.Params != nil && len(q.Params) == 0 {
			notFound.noDefaultCtor = true
		}
		return nil, nil, notFound
	default:
		return nil, nil, &AmbiguousMemberError{
			Kind:      q.Kind,
			Owner:     def.FullName(),
			Signature: renderQuery(q),
		}
	}
}

// Find resolves a member query against the owning type reference and wraps
// the result in a reference builder. See the kind-specific helpers on
// Context for the common query shapes.
func (c *Context) Find(owner *metadata.TypeRef, q Query) (*Builder, error) {
	def, _, err := c.resolveMethod(owner, q)
	if err != nil {
		return nil, err
	}
	ref := methodRefTo(def, owner)
	return &Builder{ctx: c, ref: c.Dest.ImportMethodRef(ref)}, nil
}

// Method queries by name alone.
func (c *Context) Method(owner *metadata.TypeRef, name string) (*Builder, error) {
	return c.Find(owner, Query{Kind: KindMethod, Name: name})
}

// MethodWithSignature queries by name, optional generic arity, optional
// return descriptor and optional parameter descriptors.
func (c *Context) MethodWithSignature(owner *metadata.TypeRef, name string, arity int, ret *TypeDesc, params []TypeDesc) (*Builder, error) {
	return c.Find(owner, Query{
		Kind:         KindMethod,
		Name:         name,
		GenericArity: arity,
		Return:       ret,
		Params:       params,
	})
}

// Constructor queries instance constructors; a nil params slice matches any
// constructor, an empty one demands the default constructor.
func (c *Context) Constructor(owner *metadata.TypeRef, params []TypeDesc) (*Builder, error) {
	return c.Find(owner, Query{Kind: KindConstructor, Name: metadata.CtorName, Params: params})
}

// DefaultConstructor queries the zero-parameter constructor.
func (c *Context) DefaultConstructor(owner *metadata.TypeRef) (*Builder, error) {
	return c.Constructor(owner, []TypeDesc{})
}

// TypeInitializer queries the static type initializer.
func (c *Context) TypeInitializer(owner *metadata.TypeRef) (*Builder, error) {
	return c.Find(owner, Query{Kind: KindTypeInitializer, Name: metadata.TypeInitName})
}

// Getter queries the property's get accessor.
func (c *Context) Getter(owner *metadata.TypeRef, property string) (*Builder, error) {
	return c.Find(owner, Query{Kind: KindGetter, Name: "get_" + property})
}

// Setter queries the property's set accessor.
func (c *Context) Setter(owner *metadata.TypeRef, property string) (*Builder, error) {
	return c.Find(owner, Query{Kind: KindSetter, Name: "set_" + property})
}

// EventAdd queries the event's add accessor.
func (c *Context) EventAdd(owner *metadata.TypeRef, event string) (*Builder, error) {
	return c.Find(owner, Query{Kind: KindEventAdd, Name: "add_" + event})
}

// EventRemove queries the event's remove accessor.
func (c *Context) EventRemove(owner *metadata.TypeRef, event string) (*Builder, error) {
	return c.Find(owner, Query{Kind: KindEventRemove, Name: "remove_" + event})
}

// EventRaise queries the event's raise accessor.
func (c *Context) EventRaise(owner *metadata.TypeRef, event string) (*Builder, error) {
	return c.Find(owner, Query{Kind: KindEventRaise, Name: "raise_" + event})
}

// UnaryOperator queries a unary operator, optionally constrained by its
// operand type.
func (c *Context) UnaryOperator(owner *metadata.TypeRef, op Operator, operand *TypeDesc) (*Builder, error) {
	q := Query{Kind: KindOperator, Name: op.MethodName()}
	if operand != nil {
		q.Params = []TypeDesc{*operand}
	}
	return c.Find(owner, q)
}

// BinaryOperator queries a binary operator by its two operand types.
func (c *Context) BinaryOperator(owner *metadata.TypeRef, op Operator, left, right TypeDesc) (*Builder, error) {
	return c.Find(owner, Query{
		Kind:   KindOperator,
		Name:   op.MethodName(),
		Params: []TypeDesc{left, right},
	})
}

// Conversion queries an implicit or explicit conversion operator. ConvFrom
// matches on the parameter type equal to other, ConvTo on the return type
// equal to other.
func (c *Context) Conversion(owner *metadata.TypeRef, op Operator, dir ConvDir, other TypeDesc) (*Builder, error) {
	return c.Find(owner, Query{
		Kind:      KindConversion,
		Name:      op.MethodName(),
		ConvDir:   dir,
		ConvOther: &other,
	})
}

// methodRefTo builds a reference to the resolved definition. A member found
// through a generic-instantiated type reference is declared on that
// instantiation, not on the generic definition; signature types that name
// the owner's generic parameters stay parameter refs, bound by the declaring
// type reference.
func methodRefTo(def *metadata.MethodDef, owner *metadata.TypeRef) *metadata.MethodRef {
	declaring := owner
	if len(owner.Args) == 0 && def.DeclaringType != nil {
		declaring = def.DeclaringType.Ref()
	}
	count := uint32(len(def.GenericParams))
	ref := &metadata.MethodRef{
		Name:              def.Name,
		DeclaringType:     declaring,
		Call:              def.Call,
		GenericParamCount: count,
		Return:            def.Return,
	}
	for _, p := range def.Params {
		ref.Params = append(ref.Params, &metadata.Param{Name: p.Name, Type: p.Type})
	}
	return ref
}
