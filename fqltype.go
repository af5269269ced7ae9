package fsl

// FQLTypeKind tags the recursive FQLType variant described in spec.md §3.
type FQLTypeKind int

const (
	FQLNamed FQLTypeKind = iota
	FQLObject
	FQLUnion
	FQLOptional
	FQLTemplate
	FQLTuple
	FQLStringLiteral
	FQLNumberLiteral
	FQLFunction
	FQLIsolated
)

func (k FQLTypeKind) String() string {
	switch k {
	case FQLNamed:
		return "named"
	case FQLObject:
		return "object"
	case FQLUnion:
		return "union"
	case FQLOptional:
		return "optional"
	case FQLTemplate:
		return "template"
	case FQLTuple:
		return "tuple"
	case FQLStringLiteral:
		return "string_literal"
	case FQLNumberLiteral:
		return "number_literal"
	case FQLFunction:
		return "function"
	case FQLIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// ObjectField is one member of an FQLObject type: `key: Type` or
// `key?: Type` when Optional is set.
type ObjectField struct {
	Key      string
	Type     *FQLType
	Optional bool
}

// FuncParams is the parameter list of an FQLFunction type. The grammar
// allows either a short positional list (`(A, B) => R`) or — per spec.md
// §3 — a variadic trailing parameter; there is no named-parameter long
// form in FSL's function types, only an optional variadic flag on the last
// parameter.
type FuncParams struct {
	Types    []*FQLType
	Variadic bool
}

// FQLType is a closed tagged variant over the embedded FQL type grammar.
// Only the fields relevant to Kind are populated; the canonical printer and
// code-equality routine are exhaustive switches over Kind, so adding a
// variant means updating every switch (spec.md §9).
type FQLType struct {
	kind FQLTypeKind
	Pos  Position

	// FQLNamed
	Named string

	// FQLObject
	ObjectFields []ObjectField
	Wildcard     *FQLType // type of `*: T` catch-all, nil if absent

	// FQLUnion
	UnionLHS *FQLType
	UnionRHS *FQLType

	// FQLOptional, FQLIsolated
	Inner *FQLType

	// FQLTemplate
	TemplateName   string
	TemplateParams []*FQLType

	// FQLTuple
	TupleTypes []*FQLType

	// FQLStringLiteral
	StringLit string

	// FQLNumberLiteral
	NumberLit string

	// FQLFunction
	FuncParams FuncParams
	FuncReturn *FQLType
}

// Tag returns the type's variant kind. Both a nil *FQLType and the zero
// FQLType value report FQLNamed, so callers check for nil first: a nil
// *FQLType is how "unknown" field types are represented (spec.md §3:
// "absence means unknown").
func (t *FQLType) Tag() FQLTypeKind {
	if t == nil {
		return FQLNamed
	}
	return t.kind
}

func namedType(name string, pos Position) *FQLType {
	return &FQLType{kind: FQLNamed, Pos: pos, Named: name}
}

func objectType(fields []ObjectField, wildcard *FQLType, pos Position) *FQLType {
	return &FQLType{kind: FQLObject, Pos: pos, ObjectFields: fields, Wildcard: wildcard}
}

func unionType(lhs, rhs *FQLType, pos Position) *FQLType {
	return &FQLType{kind: FQLUnion, Pos: pos, UnionLHS: lhs, UnionRHS: rhs}
}

func optionalType(inner *FQLType, pos Position) *FQLType {
	return &FQLType{kind: FQLOptional, Pos: pos, Inner: inner}
}

func templateType(name string, params []*FQLType, pos Position) *FQLType {
	return &FQLType{kind: FQLTemplate, Pos: pos, TemplateName: name, TemplateParams: params}
}

func tupleType(types []*FQLType, pos Position) *FQLType {
	return &FQLType{kind: FQLTuple, Pos: pos, TupleTypes: types}
}

func stringLiteralType(lit string, pos Position) *FQLType {
	return &FQLType{kind: FQLStringLiteral, Pos: pos, StringLit: lit}
}

func numberLiteralType(lit string, pos Position) *FQLType {
	return &FQLType{kind: FQLNumberLiteral, Pos: pos, NumberLit: lit}
}

func functionType(params FuncParams, ret *FQLType, pos Position) *FQLType {
	return &FQLType{kind: FQLFunction, Pos: pos, FuncParams: params, FuncReturn: ret}
}

func isolatedType(inner *FQLType, pos Position) *FQLType {
	return &FQLType{kind: FQLIsolated, Pos: pos, Inner: inner}
}

// NewNamedType, NewObjectType, ... are the exported constructors used by
// the parser and by tests building trees by hand.
func NewNamedType(name string, pos Position) *FQLType               { return namedType(name, pos) }
func NewObjectType(fields []ObjectField, wildcard *FQLType, pos Position) *FQLType {
	return objectType(fields, wildcard, pos)
}
func NewUnionType(lhs, rhs *FQLType, pos Position) *FQLType          { return unionType(lhs, rhs, pos) }
func NewOptionalType(inner *FQLType, pos Position) *FQLType          { return optionalType(inner, pos) }
func NewTemplateType(name string, params []*FQLType, pos Position) *FQLType {
	return templateType(name, params, pos)
}
func NewTupleType(types []*FQLType, pos Position) *FQLType          { return tupleType(types, pos) }
func NewStringLiteralType(lit string, pos Position) *FQLType        { return stringLiteralType(lit, pos) }
func NewNumberLiteralType(lit string, pos Position) *FQLType        { return numberLiteralType(lit, pos) }
func NewFunctionType(params FuncParams, ret *FQLType, pos Position) *FQLType {
	return functionType(params, ret, pos)
}
func NewIsolatedType(inner *FQLType, pos Position) *FQLType { return isolatedType(inner, pos) }

// CloneType deep-duplicates an FQLType tree. alloc is tracked for every
// node produced, matching the ownership discipline of TextNode.Clone.
func CloneType(alloc *Allocator, t *FQLType) *FQLType {
	if t == nil {
		return nil
	}
	alloc.track()
	out := &FQLType{kind: t.kind, Pos: t.Pos, Named: t.Named, StringLit: t.StringLit, NumberLit: t.NumberLit}
	switch t.kind {
	case FQLObject:
		out.ObjectFields = make([]ObjectField, len(t.ObjectFields))
		for i, f := range t.ObjectFields {
			out.ObjectFields[i] = ObjectField{Key: f.Key, Type: CloneType(alloc, f.Type), Optional: f.Optional}
		}
		out.Wildcard = CloneType(alloc, t.Wildcard)
	case FQLUnion:
		out.UnionLHS = CloneType(alloc, t.UnionLHS)
		out.UnionRHS = CloneType(alloc, t.UnionRHS)
	case FQLOptional, FQLIsolated:
		out.Inner = CloneType(alloc, t.Inner)
	case FQLTemplate:
		out.TemplateName = t.TemplateName
		out.TemplateParams = make([]*FQLType, len(t.TemplateParams))
		for i, p := range t.TemplateParams {
			out.TemplateParams[i] = CloneType(alloc, p)
		}
	case FQLTuple:
		out.TupleTypes = make([]*FQLType, len(t.TupleTypes))
		for i, p := range t.TupleTypes {
			out.TupleTypes[i] = CloneType(alloc, p)
		}
	case FQLFunction:
		out.FuncParams.Variadic = t.FuncParams.Variadic
		out.FuncParams.Types = make([]*FQLType, len(t.FuncParams.Types))
		for i, p := range t.FuncParams.Types {
			out.FuncParams.Types[i] = CloneType(alloc, p)
		}
		out.FuncReturn = CloneType(alloc, t.FuncReturn)
	}
	return out
}

// TypeCodeEqual implements code-equality for FQLType (positions ignored),
// per spec.md §4.4 and the Open Question about optional-slice treatment:
// both-nil and both-present are the only equal cases, one-nil-one-present
// is always unequal.
func TypeCodeEqual(a, b *FQLType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case FQLNamed:
		return a.Named == b.Named
	case FQLObject:
		if len(a.ObjectFields) != len(b.ObjectFields) {
			return false
		}
		for i := range a.ObjectFields {
			fa, fb := a.ObjectFields[i], b.ObjectFields[i]
			if fa.Key != fb.Key || fa.Optional != fb.Optional || !TypeCodeEqual(fa.Type, fb.Type) {
				return false
			}
		}
		return TypeCodeEqual(a.Wildcard, b.Wildcard)
	case FQLUnion:
		return TypeCodeEqual(a.UnionLHS, b.UnionLHS) && TypeCodeEqual(a.UnionRHS, b.UnionRHS)
	case FQLOptional, FQLIsolated:
		return TypeCodeEqual(a.Inner, b.Inner)
	case FQLTemplate:
		if a.TemplateName != b.TemplateName || len(a.TemplateParams) != len(b.TemplateParams) {
			return false
		}
		for i := range a.TemplateParams {
			if !TypeCodeEqual(a.TemplateParams[i], b.TemplateParams[i]) {
				return false
			}
		}
		return true
	case FQLTuple:
		if len(a.TupleTypes) != len(b.TupleTypes) {
			return false
		}
		for i := range a.TupleTypes {
			if !TypeCodeEqual(a.TupleTypes[i], b.TupleTypes[i]) {
				return false
			}
		}
		return true
	case FQLStringLiteral:
		return a.StringLit == b.StringLit
	case FQLNumberLiteral:
		return a.NumberLit == b.NumberLit
	case FQLFunction:
		if a.FuncParams.Variadic != b.FuncParams.Variadic || len(a.FuncParams.Types) != len(b.FuncParams.Types) {
			return false
		}
		for i := range a.FuncParams.Types {
			if !TypeCodeEqual(a.FuncParams.Types[i], b.FuncParams.Types[i]) {
				return false
			}
		}
		return TypeCodeEqual(a.FuncReturn, b.FuncReturn)
	default:
		return false
	}
}
