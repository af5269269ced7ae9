package fsl

// DeclKind tags the closed Declaration variant (spec.md §3).
type DeclKind int

const (
	KindAccessProvider DeclKind = iota
	KindCollection
	KindFunction
	KindRole
)

// String renders the kind the way the FSL grammar spells it, which is also
// the kind-string accepted by the FFI's filter_by_kind/remove_declaration
// operations (spec.md §6.2).
func (k DeclKind) String() string {
	switch k {
	case KindAccessProvider:
		return "access_provider"
	case KindCollection:
		return "collection"
	case KindFunction:
		return "function"
	case KindRole:
		return "role"
	default:
		return "unknown"
	}
}

// ParseDeclKind maps a kind-string back to a DeclKind, returning an
// InvalidDeclarationKind error if s isn't one of the four recognized
// values.
func ParseDeclKind(s string) (DeclKind, error) {
	switch s {
	case "access_provider":
		return KindAccessProvider, nil
	case "collection":
		return KindCollection, nil
	case "function":
		return KindFunction, nil
	case "role":
		return KindRole, nil
	default:
		return 0, &Error{Kind: ErrInvalidDeclarationKind, Message: s}
	}
}

// ExprBlob is an FQL expression captured verbatim: function bodies,
// predicates and computed-field expressions are not parsed (spec.md §4.1),
// only scanned for their closing brace and preserved as text with a source
// span.
type ExprBlob struct {
	Text string
	Pos  Position
}

// Declaration is a tagged variant over the four top-level FSL entities.
// Exactly one of AccessProvider/Collection/Function/Role is non-nil,
// selected by Kind.
type Declaration struct {
	Kind           DeclKind
	Pos            Position
	AccessProvider *AccessProviderDecl
	Collection     *CollectionDecl
	Function       *FunctionDecl
	Role           *RoleDecl
}

// Name returns the declared entity's name, regardless of kind.
func (d *Declaration) Name() string {
	switch d.Kind {
	case KindAccessProvider:
		return d.AccessProvider.Name.Text
	case KindCollection:
		return d.Collection.Name.Text
	case KindFunction:
		return d.Function.Name.Text
	case KindRole:
		return d.Role.Name.Text
	default:
		return ""
	}
}

// AccessProviderDecl is `access provider NAME { ... }`.
type AccessProviderDecl struct {
	Name    TextNode
	Issuer  *TextNode
	JWKSURI *TextNode
	Roles   []TextNode
	TTL     *TextNode // raw duration literal, e.g. "1h"; nil when absent
}

// FieldDecl is a plain collection field. Type is nil when the source left
// the type off, which the spec defines as meaning `unknown`.
type FieldDecl struct {
	Name TextNode
	Type *FQLType
}

// ComputedFieldDecl is `compute NAME: TYPE = { EXPR }` (TYPE optional).
type ComputedFieldDecl struct {
	Name TextNode
	Type *FQLType
	Expr ExprBlob
}

// ConstraintKind tags whether a CollectionDecl constraint is a `unique` or
// a `check` constraint.
type ConstraintKind int

const (
	ConstraintUnique ConstraintKind = iota
	ConstraintCheck
)

// ConstraintDecl is a `unique [fields...]` or `check { EXPR }` member.
type ConstraintDecl struct {
	Kind      ConstraintKind
	Fields    []TextNode // ConstraintUnique: the field list
	Predicate *ExprBlob  // ConstraintCheck: the check expression
}

// IndexDecl is an `index NAME { terms = [...] values = [...] unique = BOOL }`
// member.
type IndexDecl struct {
	Name   TextNode
	Terms  []TextNode
	Values []TextNode
	Unique bool
}

// CollectionDecl is `collection NAME (as TYPE)? { ... }`.
type CollectionDecl struct {
	Name           TextNode
	Alias          *FQLType // non-nil when declared `as <type>`
	HistoryDays    *int64
	TTLDays        *int64
	DocumentTTLs   bool
	Fields         []FieldDecl
	ComputedFields []ComputedFieldDecl
	Constraints    []ConstraintDecl
	Indexes        []IndexDecl
	Migrations     *ExprBlob
}

// ParamDecl is one UDF parameter: `name` or `name: TYPE`.
type ParamDecl struct {
	Name TextNode
	Type *FQLType
}

// FunctionDecl is a `function NAME(params) (: TYPE)? { body }` UDF.
type FunctionDecl struct {
	Name   TextNode
	Params []ParamDecl
	Return *FQLType
	Body   ExprBlob
	Role   *TextNode
}

// ActionKind enumerates the privilege actions a role may grant on a
// resource (spec.md §3).
type ActionKind int

const (
	ActionRead ActionKind = iota
	ActionWrite
	ActionCreate
	ActionDelete
	ActionHistoryRead
	ActionCall
)

func (k ActionKind) String() string {
	switch k {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionCreate:
		return "create"
	case ActionDelete:
		return "delete"
	case ActionHistoryRead:
		return "history_read"
	case ActionCall:
		return "call"
	default:
		return "unknown"
	}
}

// Action is one `read`/`write`/... entry within a privilege block, with an
// optional predicate expression gating it.
type Action struct {
	Kind      ActionKind
	Predicate *ExprBlob
}

// PrivilegeDecl is one `privileges { resource "X" { read ... } }` entry.
type PrivilegeDecl struct {
	Resource TextNode
	Actions  []Action
}

// MembershipDecl is one `membership { collection "X" { predicate = ... } }`
// entry.
type MembershipDecl struct {
	Collection TextNode
	Predicate  *ExprBlob
}

// RoleDecl is `role NAME { privileges {...} membership {...} }`.
type RoleDecl struct {
	Name        TextNode
	Privileges  []PrivilegeDecl
	Memberships []MembershipDecl
}
