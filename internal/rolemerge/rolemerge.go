// Package rolemerge consolidates repeated role declarations into one,
// deduplicating privileges and memberships and detecting genuine conflicts
// (spec.md §4.4).
package rolemerge

import "github.com/schemakit/fsl"

// Merge mutates tree in place: every role name that appears more than once
// is replaced by a single merged RoleDecl carrying the source position of
// its first occurrence; non-role declarations keep their original relative
// order, with merged roles appended after them in first-seen order (spec.md
// §4.4 rule 3).
func Merge(tree *fsl.SchemaTree) error {
	var others []*fsl.Declaration
	order := []string{}
	byName := map[string][]*fsl.RoleDecl{}

	for _, d := range tree.Decls {
		if d.Kind != fsl.KindRole {
			others = append(others, d)
			continue
		}
		name := d.Role.Name.Text
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = append(byName[name], d.Role)
	}

	merged := make([]*fsl.Declaration, 0, len(order))
	for _, name := range order {
		roles := byName[name]
		m, err := mergeRoles(roles)
		if err != nil {
			return err
		}
		merged = append(merged, &fsl.Declaration{Kind: fsl.KindRole, Pos: posValue(roles[0].Name), Role: m})
	}

	tree.Decls = append(others, merged...)
	return nil
}

func posValue(t fsl.TextNode) fsl.Position {
	if t.Pos == nil {
		return fsl.Position{}
	}
	return *t.Pos
}

func mergeRoles(roles []*fsl.RoleDecl) (*fsl.RoleDecl, error) {
	out := &fsl.RoleDecl{Name: roles[0].Name}

	privOrder := []string{}
	privByResource := map[string]*fsl.PrivilegeDecl{}
	for _, r := range roles {
		for i := range r.Privileges {
			p := &r.Privileges[i]
			key := p.Resource.Text
			existing, ok := privByResource[key]
			if !ok {
				cp := *p
				cp.Actions = append([]fsl.Action{}, p.Actions...)
				privByResource[key] = &cp
				privOrder = append(privOrder, key)
				continue
			}
			merged, err := mergeActions(existing.Actions, p.Actions, key)
			if err != nil {
				return nil, err
			}
			existing.Actions = merged
		}
	}
	for _, key := range privOrder {
		out.Privileges = append(out.Privileges, *privByResource[key])
	}

	membOrder := []string{}
	membByCollection := map[string]*fsl.MembershipDecl{}
	for _, r := range roles {
		for i := range r.Memberships {
			m := &r.Memberships[i]
			key := m.Collection.Text
			existing, ok := membByCollection[key]
			if !ok {
				cp := *m
				membByCollection[key] = &cp
				membOrder = append(membOrder, key)
				continue
			}
			if !predicateEqual(existing.Predicate, m.Predicate) {
				return nil, fsl.DuplicateMembershipError(key)
			}
		}
	}
	for _, key := range membOrder {
		out.Memberships = append(out.Memberships, *membByCollection[key])
	}

	return out, nil
}

// mergeActions unions two action lists for the same resource, detecting a
// conflict when the same action kind appears in both with predicates that
// are not code-equal.
func mergeActions(existing, incoming []fsl.Action, resource string) ([]fsl.Action, error) {
	byKind := map[fsl.ActionKind]*fsl.Action{}
	out := append([]fsl.Action{}, existing...)
	for i := range out {
		byKind[out[i].Kind] = &out[i]
	}
	for _, a := range incoming {
		if e, ok := byKind[a.Kind]; ok {
			if !predicateEqual(e.Predicate, a.Predicate) {
				return nil, fsl.DuplicateActionError(resource, a.Kind.String())
			}
			continue
		}
		out = append(out, a)
		byKind[a.Kind] = &out[len(out)-1]
	}
	return out, nil
}

// predicateEqual implements code-equality for an optional expression blob:
// both absent is equal, one absent is unequal, both present compares text
// (positions ignored — spec.md §4.4).
func predicateEqual(a, b *fsl.ExprBlob) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Text == b.Text
}
