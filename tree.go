package fsl

// SchemaTree is the root of a parsed (or synthesized) FSL document: an
// allocator, an ordered declaration list, and the shared "extras" blobs
// (comments, blank lines) anchored to positions within that list.
//
// A tree is created by Parse, Merge, Clone, or the treeops filter; it is
// mutated in place by the linker, the role merger, and treeops; it is
// destroyed by Dispose. A tree handed into Merge is consumed and must not
// be used again (spec.md §3 "Lifecycle").
type SchemaTree struct {
	Alloc    *Allocator
	Decls    []*Declaration
	Extras   []*Extra
	disposed bool
}

// NewTree creates an empty tree with a fresh allocator.
func NewTree() *SchemaTree {
	return &SchemaTree{Alloc: NewAllocator()}
}

// NewTreeWithAllocator creates an empty tree sharing the given allocator.
// Used at the FFI boundary, where every tree shares one process-wide
// allocator (spec.md §6.2, §5).
func NewTreeWithAllocator(alloc *Allocator) *SchemaTree {
	return &SchemaTree{Alloc: alloc}
}

// Disposed reports whether Dispose has already run on this tree.
func (t *SchemaTree) Disposed() bool {
	return t == nil || t.disposed
}

// Length returns the declaration count (FFI `length`).
func (t *SchemaTree) Length() int {
	if t == nil {
		return 0
	}
	return len(t.Decls)
}

// AddDecl appends a declaration, tracking it against the tree's allocator.
func (t *SchemaTree) AddDecl(d *Declaration) {
	t.Alloc.track()
	t.Decls = append(t.Decls, d)
}

// AddExtra appends a shared extras blob.
func (t *SchemaTree) AddExtra(e *Extra) {
	t.Extras = append(t.Extras, e)
}

// Dispose recursively releases every owned node (by resetting the
// allocator's bookkeeping) and decrements the refcount on every extras
// handle the tree holds. It is safe to call more than once; a second call
// is a no-op rather than a double-free, matching the allocator's own
// idempotence.
//
// Disposing a tree whose declarations were partially consumed by a failed
// operation is always safe: the linker and role merger guarantee a tree is
// left either fully rewritten or untouched on error (spec.md §5), never in
// a state with dangling cross-references that would panic here.
func (t *SchemaTree) Dispose() {
	if t == nil || t.disposed {
		return
	}
	for _, e := range t.Extras {
		e.Release()
	}
	t.Alloc.Dispose()
	t.Decls = nil
	t.Extras = nil
	t.disposed = true
}

// Clone deep-duplicates the entire tree into a new allocator (or alloc, if
// non-nil — used when cloning into an existing allocation domain, e.g. at
// the FFI boundary). Extras are refcount-cloned rather than copied, per
// spec.md §4.5.
func (t *SchemaTree) Clone(alloc *Allocator) *SchemaTree {
	if alloc == nil {
		alloc = NewAllocator()
	}
	out := &SchemaTree{Alloc: alloc}
	for _, d := range t.Decls {
		out.AddDecl(cloneDeclaration(alloc, d))
	}
	for _, e := range t.Extras {
		out.Extras = append(out.Extras, e.Clone())
	}
	return out
}

// CloneDeclaration deep-duplicates a single declaration into alloc's
// allocation domain. Used by treeops.Filter, which builds a new tree out of
// a subset of another tree's declarations.
func CloneDeclaration(alloc *Allocator, d *Declaration) *Declaration {
	return cloneDeclaration(alloc, d)
}

func cloneDeclaration(alloc *Allocator, d *Declaration) *Declaration {
	out := &Declaration{Kind: d.Kind, Pos: d.Pos}
	switch d.Kind {
	case KindAccessProvider:
		out.AccessProvider = cloneAccessProvider(alloc, d.AccessProvider)
	case KindCollection:
		out.Collection = cloneCollection(alloc, d.Collection)
	case KindFunction:
		out.Function = cloneFunction(alloc, d.Function)
	case KindRole:
		out.Role = cloneRole(alloc, d.Role)
	}
	return out
}

func cloneTextPtr(alloc *Allocator, n *TextNode) *TextNode {
	if n == nil {
		return nil
	}
	c := n.Clone(alloc)
	return &c
}

func cloneExprPtr(alloc *Allocator, e *ExprBlob) *ExprBlob {
	if e == nil {
		return nil
	}
	alloc.track()
	c := *e
	return &c
}

func cloneAccessProvider(alloc *Allocator, a *AccessProviderDecl) *AccessProviderDecl {
	out := &AccessProviderDecl{
		Name:    a.Name.Clone(alloc),
		Issuer:  cloneTextPtr(alloc, a.Issuer),
		JWKSURI: cloneTextPtr(alloc, a.JWKSURI),
		TTL:     cloneTextPtr(alloc, a.TTL),
	}
	for _, r := range a.Roles {
		out.Roles = append(out.Roles, r.Clone(alloc))
	}
	return out
}

func cloneCollection(alloc *Allocator, c *CollectionDecl) *CollectionDecl {
	out := &CollectionDecl{
		Name:         c.Name.Clone(alloc),
		Alias:        CloneType(alloc, c.Alias),
		DocumentTTLs: c.DocumentTTLs,
	}
	if c.HistoryDays != nil {
		v := *c.HistoryDays
		out.HistoryDays = &v
	}
	if c.TTLDays != nil {
		v := *c.TTLDays
		out.TTLDays = &v
	}
	for _, f := range c.Fields {
		out.Fields = append(out.Fields, FieldDecl{Name: f.Name.Clone(alloc), Type: CloneType(alloc, f.Type)})
	}
	for _, cf := range c.ComputedFields {
		alloc.track()
		out.ComputedFields = append(out.ComputedFields, ComputedFieldDecl{
			Name: cf.Name.Clone(alloc), Type: CloneType(alloc, cf.Type), Expr: cf.Expr,
		})
	}
	for _, cons := range c.Constraints {
		nc := ConstraintDecl{Kind: cons.Kind, Predicate: cloneExprPtr(alloc, cons.Predicate)}
		for _, f := range cons.Fields {
			nc.Fields = append(nc.Fields, f.Clone(alloc))
		}
		out.Constraints = append(out.Constraints, nc)
	}
	for _, idx := range c.Indexes {
		ni := IndexDecl{Name: idx.Name.Clone(alloc), Unique: idx.Unique}
		for _, term := range idx.Terms {
			ni.Terms = append(ni.Terms, term.Clone(alloc))
		}
		for _, v := range idx.Values {
			ni.Values = append(ni.Values, v.Clone(alloc))
		}
		out.Indexes = append(out.Indexes, ni)
	}
	out.Migrations = cloneExprPtr(alloc, c.Migrations)
	return out
}

func cloneFunction(alloc *Allocator, f *FunctionDecl) *FunctionDecl {
	alloc.track()
	out := &FunctionDecl{
		Name:   f.Name.Clone(alloc),
		Return: CloneType(alloc, f.Return),
		Body:   f.Body,
		Role:   cloneTextPtr(alloc, f.Role),
	}
	for _, p := range f.Params {
		out.Params = append(out.Params, ParamDecl{Name: p.Name.Clone(alloc), Type: CloneType(alloc, p.Type)})
	}
	return out
}

func cloneRole(alloc *Allocator, r *RoleDecl) *RoleDecl {
	out := &RoleDecl{Name: r.Name.Clone(alloc)}
	for _, p := range r.Privileges {
		np := PrivilegeDecl{Resource: p.Resource.Clone(alloc)}
		for _, a := range p.Actions {
			np.Actions = append(np.Actions, Action{Kind: a.Kind, Predicate: cloneExprPtr(alloc, a.Predicate)})
		}
		out.Privileges = append(out.Privileges, np)
	}
	for _, m := range r.Memberships {
		out.Memberships = append(out.Memberships, MembershipDecl{
			Collection: m.Collection.Clone(alloc), Predicate: cloneExprPtr(alloc, m.Predicate),
		})
	}
	return out
}
