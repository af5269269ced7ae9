// Package treeops implements the tree-level operations of spec.md §4.5:
// filter, remove, stripRolesResource, sort, and the JSON declaration
// listing used by the FFI's list_declarations surface.
package treeops

import (
	"encoding/json"
	"sort"

	"github.com/schemakit/fsl"
)

// Filter returns a new tree containing deep-duplicates of every
// declaration matching kind. The source tree is left untouched.
func Filter(tree *fsl.SchemaTree, kind fsl.DeclKind) *fsl.SchemaTree {
	out := fsl.NewTree()
	for _, d := range tree.Decls {
		if d.Kind != kind {
			continue
		}
		out.AddDecl(fsl.CloneDeclaration(out.Alloc, d))
	}
	for _, e := range tree.Extras {
		out.AddExtra(e.Clone())
	}
	return out
}

// Remove deletes, in place, the first declaration matching kind and name,
// compacting the remaining slice left. It reports whether anything was
// removed.
func Remove(tree *fsl.SchemaTree, kind fsl.DeclKind, name string) bool {
	for i, d := range tree.Decls {
		if d.Kind == kind && d.Name() == name {
			tree.Decls = append(tree.Decls[:i], tree.Decls[i+1:]...)
			return true
		}
	}
	return false
}

// StripRolesResource deletes, from every role in the tree, any privilege
// member whose resource text equals name, compacting each role's privilege
// slice.
func StripRolesResource(tree *fsl.SchemaTree, name string) {
	for _, d := range tree.Decls {
		if d.Kind != fsl.KindRole {
			continue
		}
		kept := d.Role.Privileges[:0]
		for _, p := range d.Role.Privileges {
			if p.Resource.Text != name {
				kept = append(kept, p)
			}
		}
		d.Role.Privileges = kept
	}
}

// Sort stably reorders the tree's declarations by (kind tag, name).
func Sort(tree *fsl.SchemaTree) {
	sort.SliceStable(tree.Decls, func(i, j int) bool {
		a, b := tree.Decls[i], tree.Decls[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Name() < b.Name()
	})
}

// listedDecl is the JSON shape emitted by ListDeclarations, matching the
// FFI's list_declarations surface (spec.md §4.5, §6.2).
type listedDecl struct {
	Type      string   `json:"type"`
	Name      string   `json:"name"`
	Resources []string `json:"resources,omitempty"`
}

// ListDeclarations renders the tree's declarations as the JSON array
// `[{type, name, resources?: [string]}]`. Only role declarations populate
// resources, listing the privilege resources they grant in source order.
func ListDeclarations(tree *fsl.SchemaTree) ([]byte, error) {
	out := make([]listedDecl, 0, tree.Length())
	for _, d := range tree.Decls {
		ld := listedDecl{Type: d.Kind.String(), Name: d.Name()}
		if d.Kind == fsl.KindRole {
			for _, p := range d.Role.Privileges {
				ld.Resources = append(ld.Resources, p.Resource.Text)
			}
		}
		out = append(out, ld)
	}
	return json.Marshal(out)
}
