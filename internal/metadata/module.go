// Package metadata models one compiled program module: its declared types,
// their members and instruction streams, and the reference tables used to
// point at members of other modules. The model is mutated in place and is
// not safe for concurrent transformation sessions.
package metadata

// Module is a compiled unit containing type definitions. References imported
// from other modules accumulate in the reference tables until the external
// writer persists them.
type Module struct {
	Name       string
	Scope      string
	TypeDefs   []*TypeDef
	TypeRefs   []*TypeRef
	MethodRefs []*MethodRef
	FieldRefs  []*FieldRef
}

// NewModule builds an empty module whose definitions live in the given scope.
func NewModule(name, scope string) *Module {
	return &Module{Name: name, Scope: scope}
}

// AddType declares a type in the module.
func (m *Module) AddType(def *TypeDef) *TypeDef {
	def.Module = m
	m.TypeDefs = append(m.TypeDefs, def)
	return def
}

// Type looks up a declared type by full name.
func (m *Module) Type(fullName string) *TypeDef {
	for _, def := range m.TypeDefs {
		if def.FullName() == fullName {
			return def
		}
	}
	return nil
}

// ImportTypeRef binds a type reference into this module's scope. References
// to types declared here resolve to the local definition's ref; foreign
// references are deduplicated against the module's type-reference table,
// keeping their defining scope intact. Generic-parameter refs are scope-free
// and pass through.
func (m *Module) ImportTypeRef(ref *TypeRef) *TypeRef {
	if ref == nil || ref.Kind != RefNamed {
		return ref
	}
	if len(ref.Args) > 0 {
		elem := *ref
		elem.Args = nil
		imported := m.ImportTypeRef(&elem)
		args := make([]*TypeRef, len(ref.Args))
		for i, a := range ref.Args {
			args[i] = m.ImportTypeRef(a)
		}
		return imported.Instantiated(args...)
	}
	if ref.Scope == m.Scope {
		return ref
	}
	for _, existing := range m.TypeRefs {
		if existing.Identical(ref) {
			return existing
		}
	}
	cp := *ref
	m.TypeRefs = append(m.TypeRefs, &cp)
	return &cp
}

// ImportMethodRef binds a method reference into this module's scope: the
// declaring type and every type in the signature are imported, and the
// resulting reference is appended to the method-reference table.
func (m *Module) ImportMethodRef(ref *MethodRef) *MethodRef {
	out := ref.Clone()
	out.DeclaringType = m.ImportTypeRef(ref.DeclaringType)
	out.Return = m.ImportTypeRef(ref.Return)
	for i, p := range ref.Params {
		t := m.ImportTypeRef(p.Type)
		if p.Type != nil && p.Type.Sentinel && !t.Sentinel {
			t = t.WithSentinel()
		}
		out.Params[i] = &Param{Name: p.Name, Type: t}
	}
	args := make([]*TypeRef, len(ref.Args))
	for i, a := range ref.Args {
		args[i] = m.ImportTypeRef(a)
	}
	out.Args = args
	m.MethodRefs = append(m.MethodRefs, out)
	return out
}

// ImportFieldRef binds a field reference into this module's scope and
// appends it to the field-reference table. The declaring type is imported
// as given, so a field requested through a generic instantiation keeps that
// instantiation as its owner.
func (m *Module) ImportFieldRef(ref *FieldRef) *FieldRef {
	out := &FieldRef{
		Name:          ref.Name,
		Type:          m.ImportTypeRef(ref.Type),
		DeclaringType: m.ImportTypeRef(ref.DeclaringType),
	}
	m.FieldRefs = append(m.FieldRefs, out)
	return out
}
