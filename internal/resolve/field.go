package resolve

import "weft/internal/metadata"

// Field resolves a field by simple name (field types are not overloaded, so
// no signature matching applies) under the usual three-way reduction. The
// imported reference's declaring type is forced to the originally requested
// type reference, so a field found through a generic instantiation belongs
// to that instantiation rather than the generic definition.
func (c *Context) Field(owner *metadata.TypeRef, name string) (*metadata.FieldRef, error) {
	def, err := c.ResolveRequiredType(owner)
	if err != nil {
		return nil, err
	}
	var matches []*metadata.FieldDef
	for _, f := range def.Fields {
		if f.Name == name {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 1:
		return c.Dest.ImportFieldRef(&metadata.FieldRef{
			Name:          name,
			Type:          matches[0].Type,
			DeclaringType: owner,
		}), nil
	case 0:
		return nil, &MemberNotFoundError{Kind: KindField, Owner: def.FullName(), Signature: name}
	default:
		return nil, &AmbiguousMemberError{Kind: KindField, Owner: def.FullName(), Signature: name}
	}
}
