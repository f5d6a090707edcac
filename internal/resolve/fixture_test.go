package resolve_test

import (
	"weft/internal/metadata"
	"weft/internal/resolve"
)

// fixture wires a destination module plus one source library the way a
// transformation session sees them.
type fixture struct {
	ctx  *resolve.Context
	dest *metadata.Module
	lib  *metadata.Module

	intRef  *metadata.TypeRef
	strRef  *metadata.TypeRef
	objRef  *metadata.TypeRef
	utilRef *metadata.TypeRef
	calcRef *metadata.TypeRef
	boxRef  *metadata.TypeRef
	dataRef *metadata.TypeRef
}

func newFixture() *fixture {
	lib := metadata.NewModule("corelib", "corelib")

	intDef := lib.AddType(&metadata.TypeDef{Namespace: "System", Name: "Int32"})
	strDef := lib.AddType(&metadata.TypeDef{Namespace: "System", Name: "String"})
	objDef := lib.AddType(&metadata.TypeDef{Namespace: "System", Name: "Object"})
	intRef, strRef, objRef := intDef.Ref(), strDef.Ref(), objDef.Ref()

	util := lib.AddType(&metadata.TypeDef{Namespace: "Text", Name: "Util"})
	util.Methods = []*metadata.MethodDef{
		{
			Name:          "Concat",
			Flags:         metadata.FlagStatic,
			Return:        strRef,
			Params:        []*metadata.Param{{Name: "a", Type: strRef}, {Name: "b", Type: strRef}},
			DeclaringType: util,
		},
		{
			Name:          "Format",
			Flags:         metadata.FlagStatic,
			Return:        strRef,
			Params:        []*metadata.Param{{Name: "value", Type: strRef}},
			DeclaringType: util,
		},
		{
			Name:          "Format",
			Flags:         metadata.FlagStatic,
			Return:        strRef,
			Params:        []*metadata.Param{{Name: "value", Type: intRef}},
			DeclaringType: util,
		},
		{
			Name:          "Map",
			Flags:         metadata.FlagStatic,
			GenericParams: []string{"T"},
			Return:        metadata.MethodParamRef("T", 0),
			Params:        []*metadata.Param{{Name: "value", Type: metadata.MethodParamRef("T", 0)}},
			DeclaringType: util,
		},
		{
			Name:          "Printf",
			Flags:         metadata.FlagStatic,
			Call:          metadata.CallVarArg,
			Return:        strRef,
			Params:        []*metadata.Param{{Name: "format", Type: strRef}},
			DeclaringType: util,
		},
	}

	calc := lib.AddType(&metadata.TypeDef{Namespace: "Num", Name: "Calc"})
	calcRef := calc.Ref()
	calc.Methods = []*metadata.MethodDef{
		{Name: metadata.CtorName, Flags: metadata.FlagConstructor, DeclaringType: calc},
		{
			Name:          metadata.CtorName,
			Flags:         metadata.FlagConstructor,
			Params:        []*metadata.Param{{Name: "seed", Type: intRef}},
			DeclaringType: calc,
		},
		{Name: metadata.TypeInitName, Flags: metadata.FlagConstructor | metadata.FlagStatic, DeclaringType: calc},
		{Name: "get_Count", Flags: metadata.FlagSpecialName, Return: intRef, DeclaringType: calc},
		{
			Name:          "set_Count",
			Flags:         metadata.FlagSpecialName,
			Params:        []*metadata.Param{{Name: "value", Type: intRef}},
			DeclaringType: calc,
		},
		{Name: "add_Changed", Flags: metadata.FlagSpecialName, Params: []*metadata.Param{{Name: "handler", Type: objRef}}, DeclaringType: calc},
		{Name: "remove_Changed", Flags: metadata.FlagSpecialName, Params: []*metadata.Param{{Name: "handler", Type: objRef}}, DeclaringType: calc},
		{Name: "raise_Changed", Flags: metadata.FlagSpecialName, DeclaringType: calc},
		{
			Name:          "op_Addition",
			Flags:         metadata.FlagStatic | metadata.FlagSpecialName,
			Return:        calcRef,
			Params:        []*metadata.Param{{Name: "left", Type: calcRef}, {Name: "right", Type: calcRef}},
			DeclaringType: calc,
		},
		{
			Name:          "op_UnaryNegation",
			Flags:         metadata.FlagStatic | metadata.FlagSpecialName,
			Return:        calcRef,
			Params:        []*metadata.Param{{Name: "value", Type: calcRef}},
			DeclaringType: calc,
		},
		{
			// Conversion from Int32.
			Name:          "op_Implicit",
			Flags:         metadata.FlagStatic | metadata.FlagSpecialName,
			Return:        calcRef,
			Params:        []*metadata.Param{{Name: "value", Type: intRef}},
			DeclaringType: calc,
		},
		{
			// Conversion to Int32.
			Name:          "op_Implicit",
			Flags:         metadata.FlagStatic | metadata.FlagSpecialName,
			Return:        intRef,
			Params:        []*metadata.Param{{Name: "value", Type: calcRef}},
			DeclaringType: calc,
		},
	}
	calc.Fields = []*metadata.FieldDef{
		{Name: "count", Type: intRef, DeclaringType: calc},
	}

	box := lib.AddType(&metadata.TypeDef{Namespace: "Num", Name: "Box", GenericParams: []string{"T"}})
	box.Methods = []*metadata.MethodDef{
		{Name: "Get", Return: metadata.TypeParamRef("T", 0), DeclaringType: box},
	}
	box.Fields = []*metadata.FieldDef{
		{Name: "Value", Type: metadata.TypeParamRef("T", 0), DeclaringType: box},
	}

	// Crafted duplicates for the ambiguity paths; real metadata would not
	// carry them, the resolver still has to reject them.
	data := lib.AddType(&metadata.TypeDef{Namespace: "Num", Name: "Data"})
	data.Methods = []*metadata.MethodDef{
		{Name: "twin", Return: strRef, DeclaringType: data},
		{Name: "twin", Return: strRef, DeclaringType: data},
	}
	data.Fields = []*metadata.FieldDef{
		{Name: "twin", Type: strRef, DeclaringType: data},
		{Name: "twin", Type: strRef, DeclaringType: data},
	}

	dest := metadata.NewModule("app", "app")
	return &fixture{
		ctx:     resolve.NewContext(dest, lib),
		dest:    dest,
		lib:     lib,
		intRef:  intRef,
		strRef:  strRef,
		objRef:  objRef,
		utilRef: util.Ref(),
		calcRef: calcRef,
		boxRef:  box.Ref(),
		dataRef: data.Ref(),
	}
}
