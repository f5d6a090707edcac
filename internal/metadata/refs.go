package metadata

import "strings"

// MethodRef is a module-scoped reference to a method. Unlike a MethodDef it
// may point across modules and may carry a generic instantiation.
type MethodRef struct {
	Name              string
	DeclaringType     *TypeRef
	Call              CallConv
	GenericParamCount uint32
	Return            *TypeRef
	Params            []*Param
	// Args is non-empty when the reference is a generic method instantiation.
	Args []*TypeRef
}

// IsGenericInstance reports whether the reference already carries type
// arguments.
func (r *MethodRef) IsGenericInstance() bool { return len(r.Args) > 0 }

// IsSynthesized reports whether the reference targets a compiler-generated
// member.
func (r *MethodRef) IsSynthesized() bool { return IsSynthesizedName(r.Name) }

// HasVarArgSentinel reports whether optional parameters were already appended
// to this call site.
func (r *MethodRef) HasVarArgSentinel() bool {
	for _, p := range r.Params {
		if p.Type != nil && p.Type.Sentinel {
			return true
		}
	}
	return false
}

// Clone returns a copy with a fresh parameter list. Parameter types are
// shared: refs are treated as immutable values by every mutation path.
func (r *MethodRef) Clone() *MethodRef {
	out := *r
	out.Params = make([]*Param, len(r.Params))
	for i, p := range r.Params {
		cp := *p
		out.Params[i] = &cp
	}
	out.Args = append([]*TypeRef(nil), r.Args...)
	return &out
}

// Instantiate returns a generic instantiation of the reference with the given
// type arguments substituted into the return and parameter types. The
// receiver is not modified. Argument count is the caller's contract; the
// resolver validates it before calling.
func (r *MethodRef) Instantiate(args []*TypeRef) *MethodRef {
	out := r.Clone()
	out.Args = append([]*TypeRef(nil), args...)
	out.Return = substituteMethodParams(r.Return, args)
	for i, p := range r.Params {
		out.Params[i] = &Param{Name: p.Name, Type: substituteMethodParams(p.Type, args)}
	}
	return out
}

// substituteMethodParams projects a method's own generic parameters onto
// concrete arguments. Declaring-type parameters are left alone: they are
// bound by the declaring type reference, not the method instantiation.
func substituteMethodParams(t *TypeRef, args []*TypeRef) *TypeRef {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case RefMethodParam:
		if int(t.Index) < len(args) {
			return args[t.Index]
		}
		return t
	case RefNamed:
		if len(t.Args) == 0 {
			return t
		}
		out := *t
		out.Args = make([]*TypeRef, len(t.Args))
		for i, a := range t.Args {
			out.Args[i] = substituteMethodParams(a, args)
		}
		return &out
	default:
		return t
	}
}

// FullName renders `Type::Name`, with generic arguments and the parameter
// list when present: `Ns.Box<int>::get<string>(int, string)`.
func (r *MethodRef) FullName() string {
	var sb strings.Builder
	sb.WriteString(r.DeclaringType.FullName())
	sb.WriteString("::")
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
	sb.WriteByte('(')
	for i, p := range r.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type.FullName())
	}
	sb.WriteByte(')')
	return sb.String()
}

// FieldRef is a module-scoped reference to a field. DeclaringType keeps the
// exact reference the field was requested through, so a field found on a
// generic instantiation reports that instantiation as its owner.
type FieldRef struct {
	Name          string
	Type          *TypeRef
	DeclaringType *TypeRef
}

// FullName renders `Type::Name`.
func (r *FieldRef) FullName() string {
	return r.DeclaringType.FullName() + "::" + r.Name
}
