// Package linker implements content-addressed UDF renaming (spec.md §4.3):
// every user-defined function is renamed to `<name>_<hash>`, where hash is
// the SHA-1 of the canonical printed form of its strongly connected
// component, and every reference to it (in other function bodies, role
// privilege resources, and role predicates) is rewritten in step.
package linker

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"

	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/parser"
	"github.com/schemakit/fsl/internal/printer"
)

// fnEntry pairs a function declaration with the set of other UDF names its
// body references, which decides when it can be linked.
type fnEntry struct {
	decl *fsl.FunctionDecl
	deps map[string]bool // dependency UDF names referenced in the body
}

// Link mutates tree in place, renaming every function declaration and
// every reference to it, and returns the original-name -> mangled-name
// map (used by the printer's source map and by the FFI's
// mangled_names JSON surface).
func Link(tree *fsl.SchemaTree) (map[string]string, error) {
	fns := map[string]*fnEntry{}
	for _, d := range tree.Decls {
		if d.Kind != fsl.KindFunction {
			continue
		}
		fns[d.Function.Name.Text] = &fnEntry{decl: d.Function}
	}
	for name, e := range fns {
		deps := map[string]bool{}
		for _, ref := range parser.WalkIdentifiers(e.decl.Body.Text) {
			if ref.Name != name {
				if _, ok := fns[ref.Name]; ok {
					deps[ref.Name] = true
				}
			}
		}
		e.deps = deps
	}

	mangled := map[string]string{}
	unlinked := make(map[string]bool, len(fns))
	for name := range fns {
		unlinked[name] = true
	}

	for len(unlinked) > 0 {
		leaves := leavesOf(fns, unlinked)
		if len(leaves) == 0 {
			cycles := detectCycles(fns, unlinked)
			for _, cycle := range cycles {
				if err := linkCycle(tree, fns, cycle, mangled); err != nil {
					return nil, err
				}
				for _, name := range cycle {
					delete(unlinked, name)
				}
			}
			continue
		}
		for _, name := range leaves {
			if err := linkLeaf(tree, fns, name, mangled); err != nil {
				return nil, err
			}
			delete(unlinked, name)
		}
	}

	rewriteAllReferences(tree, fns, mangled)
	return mangled, nil
}

// leavesOf returns, in lexicographic order, every still-unlinked function
// whose dependencies are all already mangled (i.e. no longer in unlinked).
func leavesOf(fns map[string]*fnEntry, unlinked map[string]bool) []string {
	var names []string
	for name := range unlinked {
		names = append(names, name)
	}
	sort.Strings(names)
	var leaves []string
	for _, name := range names {
		ready := true
		for dep := range fns[name].deps {
			if unlinked[dep] {
				ready = false
				break
			}
		}
		if ready {
			leaves = append(leaves, name)
		}
	}
	return leaves
}

func linkLeaf(tree *fsl.SchemaTree, fns map[string]*fnEntry, name string, mangled map[string]string) error {
	e := fns[name]
	rewriteBodyRefs(e, mangled)
	canon := canonicalFunctionBody(e.decl)
	hash, err := hashOf(canon)
	if err != nil {
		return err
	}
	mangled[name] = name + "_" + hash
	renameFunction(tree, e.decl, mangled[name])
	return nil
}

func linkCycle(tree *fsl.SchemaTree, fns map[string]*fnEntry, cycle []string, mangled map[string]string) error {
	var canon string
	for _, name := range cycle {
		canon += canonicalFunctionBody(fns[name].decl)
	}
	hash, err := hashOf(canon)
	if err != nil {
		return err
	}
	for _, name := range cycle {
		mangled[name] = name + "_" + hash
	}
	for _, name := range cycle {
		e := fns[name]
		rewriteBodyRefs(e, mangled)
		renameFunction(tree, e.decl, mangled[name])
	}
	return nil
}

// rewriteBodyRefs rewrites a function's own body text in place for every
// dependency that has already been mangled (true for every dependency
// outside the current cycle, and for every cycle member once the cycle's
// shared hash has been pre-populated into mangled).
func rewriteBodyRefs(e *fnEntry, mangled map[string]string) {
	for dep := range e.deps {
		newName, ok := mangled[dep]
		if !ok {
			continue
		}
		e.decl.Body = parser.RewriteBlob(e.decl.Body, dep, newName)
	}
}

func canonicalFunctionBody(f *fsl.FunctionDecl) string {
	tmp := fsl.NewTree()
	defer tmp.Dispose()
	tmp.AddDecl(&fsl.Declaration{Kind: fsl.KindFunction, Function: f})
	return printer.Print(tmp, printer.Options{})
}

func hashOf(canon string) (string, error) {
	h := sha1.New()
	if _, err := h.Write([]byte(canon)); err != nil {
		return "", &fsl.Error{Kind: fsl.ErrHashComputationFailed, Wrapped: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func renameFunction(tree *fsl.SchemaTree, f *fsl.FunctionDecl, newName string) {
	f.Name.Rewrite(tree.Alloc, tree.Alloc, newName)
}

// rewriteAllReferences rewrites every remaining reference to a mangled
// function name: other functions already had their own deps rewritten
// during linking, but role privilege resources and role predicates are
// untouched until this final pass (spec.md §4.3 "Reference rewriting").
func rewriteAllReferences(tree *fsl.SchemaTree, fns map[string]*fnEntry, mangled map[string]string) {
	for _, d := range tree.Decls {
		if d.Kind != fsl.KindRole {
			continue
		}
		for i := range d.Role.Privileges {
			priv := &d.Role.Privileges[i]
			if newName, ok := mangled[priv.Resource.Text]; ok {
				priv.Resource.Rewrite(tree.Alloc, tree.Alloc, newName)
			}
			for j := range priv.Actions {
				if priv.Actions[j].Predicate == nil {
					continue
				}
				for dep, newName := range mangled {
					*priv.Actions[j].Predicate = parser.RewriteBlob(*priv.Actions[j].Predicate, dep, newName)
				}
			}
		}
		for i := range d.Role.Memberships {
			m := &d.Role.Memberships[i]
			if m.Predicate == nil {
				continue
			}
			for dep, newName := range mangled {
				*m.Predicate = parser.RewriteBlob(*m.Predicate, dep, newName)
			}
		}
	}
}
