// Package resolve locates members inside compiled module metadata and builds
// importable, scope-correct references to them. Queries reduce their match
// set three ways: zero candidates is a not-found error, more than one is an
// ambiguity error, exactly one succeeds. No "first match wins" ordering is
// ever applied.
package resolve

import "weft/internal/metadata"

// Context wraps one destination module plus the source modules whose members
// may be referenced. One context serves one transformation session; it is
// not safe for concurrent use.
type Context struct {
	Dest    *metadata.Module
	Sources []*metadata.Module
}

// NewContext builds a resolution context importing into dest.
func NewContext(dest *metadata.Module, sources ...*metadata.Module) *Context {
	return &Context{Dest: dest, Sources: sources}
}

// ResolveRequiredType resolves a type reference to its defining type. A ref
// declared in a foreign scope is first remapped into the destination module
// so the scope binding survives the import; a generic instantiation resolves
// through its element type. Failure is an UnresolvedTypeError.
func (c *Context) ResolveRequiredType(ref *metadata.TypeRef) (*metadata.TypeDef, error) {
	if ref == nil {
		return nil, &UnresolvedTypeError{Name: "<nil>"}
	}
	lookup := ref
	if len(ref.Args) > 0 {
		elem := *ref
		elem.Args = nil
		lookup = &elem
	}
	if lookup.Kind != metadata.RefNamed {
		return nil, &UnresolvedTypeError{Name: ref.FullName()}
	}
	lookup = c.Dest.ImportTypeRef(lookup)
	for _, mod := range c.modules() {
		if lookup.Scope != "" && lookup.Scope != mod.Scope {
			continue
		}
		if def := mod.Type(lookup.FullName()); def != nil {
			return def, nil
		}
	}
	return nil, &UnresolvedTypeError{Name: ref.FullName()}
}

// typeByFullName finds a definition by rendered full name across every
// reachable module. Used by lazily-resolved descriptors, where a miss
// excludes a candidate instead of failing the query.
func (c *Context) typeByFullName(fullName string) *metadata.TypeDef {
	for _, mod := range c.modules() {
		if def := mod.Type(fullName); def != nil {
			return def
		}
	}
	return nil
}

func (c *Context) modules() []*metadata.Module {
	mods := make([]*metadata.Module, 0, len(c.Sources)+1)
	mods = append(mods, c.Dest)
	mods = append(mods, c.Sources...)
	return mods
}
