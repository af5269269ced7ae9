// Package ffi implements the host-facing operations of spec.md §6.2 in
// plain Go, over a package-level handle table mapping opaque int32 handles
// to live trees. It performs no parsing or printing logic of its own —
// every function here is a direct call into fsl/internal/parser,
// internal/printer, internal/linker, internal/rolemerge, internal/treeops,
// and internal/tsgen.
//
// This package is deliberately free of cgo: the actual `//export` C-ABI
// boundary (built with -buildmode=c-archive) lives in cmd/fslffi, a
// package-main shim that converts C types at the edge and calls straight
// through to the functions below. Keeping the cgo glue out of this package
// keeps it testable with the ordinary Go toolchain.
package ffi

import (
	"encoding/json"
	"sync"

	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/linker"
	"github.com/schemakit/fsl/internal/logging"
	"github.com/schemakit/fsl/internal/parser"
	"github.com/schemakit/fsl/internal/printer"
	"github.com/schemakit/fsl/internal/rolemerge"
	"github.com/schemakit/fsl/internal/treeops"
	"github.com/schemakit/fsl/internal/tsgen"
)

var log = logging.New()

// procAlloc is the one process-wide allocator every tree created through
// this boundary shares (spec.md §6.2a); MergeTrees clones both inputs'
// declarations into a new tree on this same allocator.
var procAlloc = fsl.NewAllocator()

var (
	mu         sync.Mutex
	handles    = map[int32]*fsl.SchemaTree{}
	nextHandle int32
)

func newHandle(tree *fsl.SchemaTree) int32 {
	mu.Lock()
	defer mu.Unlock()
	nextHandle++
	h := nextHandle
	handles[h] = tree
	return h
}

func lookup(h int32) *fsl.SchemaTree {
	mu.Lock()
	defer mu.Unlock()
	return handles[h]
}

func deleteHandle(h int32) {
	mu.Lock()
	defer mu.Unlock()
	delete(handles, h)
}

// HandleCount reports how many live handles the table holds.
func HandleCount() int {
	mu.Lock()
	defer mu.Unlock()
	return len(handles)
}

// Parse is `parse(bytes, filename?) -> tree | null` (spec.md §6.2): 0
// means the operation failed and a diagnostic was already logged.
func Parse(src []byte, filename string) int32 {
	tree, err := parser.Parse(filename, string(src))
	if err != nil {
		logging.LogCoreError(log, "parse", err)
		return 0
	}
	tree.Alloc = procAlloc
	return newHandle(tree)
}

// Clone is `clone(tree) -> tree | null`.
func Clone(handle int32) int32 {
	tree := lookup(handle)
	if tree == nil {
		return 0
	}
	return newHandle(tree.Clone(procAlloc))
}

// Dispose is `dispose(tree)`.
func Dispose(handle int32) {
	tree := lookup(handle)
	if tree == nil {
		return
	}
	tree.Dispose()
	deleteHandle(handle)
}

// Length is `length(tree) -> int`.
func Length(handle int32) int {
	return lookup(handle).Length()
}

// Sort is `sort(tree)`.
func Sort(handle int32) {
	tree := lookup(handle)
	if tree == nil {
		return
	}
	treeops.Sort(tree)
}

// MergeTrees is `merge_trees(a, b) -> tree | null`; it consumes both input
// handles regardless of success, per spec.md §6.2's "consumes a and b".
func MergeTrees(aHandle, bHandle int32) int32 {
	a := lookup(aHandle)
	b := lookup(bHandle)
	if a == nil || b == nil {
		Dispose(aHandle)
		Dispose(bHandle)
		return 0
	}
	out := fsl.NewTreeWithAllocator(procAlloc)
	for _, t := range []*fsl.SchemaTree{a, b} {
		for _, d := range t.Decls {
			out.AddDecl(fsl.CloneDeclaration(out.Alloc, d))
		}
		for _, e := range t.Extras {
			out.AddExtra(e.Clone())
		}
	}
	a.Dispose()
	b.Dispose()
	deleteHandle(aHandle)
	deleteHandle(bHandle)
	return newHandle(out)
}

// LinkFunctions is `link_functions(tree) -> json-bytes | null`, returning
// the `{original: mangled}` map as JSON.
func LinkFunctions(handle int32) []byte {
	tree := lookup(handle)
	if tree == nil {
		return nil
	}
	mangled, err := linker.Link(tree)
	if err != nil {
		logging.LogCoreError(log, "link_functions", err)
		return nil
	}
	raw, err := json.Marshal(mangled)
	if err != nil {
		logging.LogCoreError(log, "link_functions", err)
		return nil
	}
	return raw
}

// MergeRoles is `merge_roles(tree) -> tree | null`.
func MergeRoles(handle int32) int32 {
	tree := lookup(handle)
	if tree == nil {
		return 0
	}
	if err := rolemerge.Merge(tree); err != nil {
		logging.LogCoreError(log, "merge_roles", err)
		return 0
	}
	return handle
}

// FilterByKind is `filter_by_kind(tree, kind-string) -> tree | null`.
func FilterByKind(handle int32, kindStr string) int32 {
	tree := lookup(handle)
	if tree == nil {
		return 0
	}
	kind, err := fsl.ParseDeclKind(kindStr)
	if err != nil {
		logging.LogCoreError(log, "filter_by_kind", err)
		return 0
	}
	out := treeops.Filter(tree, kind)
	out.Alloc = procAlloc
	return newHandle(out)
}

// RemoveDeclaration is `remove_declaration(tree, kind-string, name) ->
// tree`; it always returns the same handle, mutated in place.
func RemoveDeclaration(handle int32, kindStr, name string) int32 {
	tree := lookup(handle)
	if tree == nil {
		return 0
	}
	kind, err := fsl.ParseDeclKind(kindStr)
	if err != nil {
		logging.LogCoreError(log, "remove_declaration", err)
		return handle
	}
	treeops.Remove(tree, kind, name)
	return handle
}

// StripRolesResource is `strip_roles_resource(tree, name)`.
func StripRolesResource(handle int32, name string) {
	tree := lookup(handle)
	if tree == nil {
		return
	}
	treeops.StripRolesResource(tree, name)
}

// ListDeclarations is `list_declarations(tree) -> json-bytes | null`.
func ListDeclarations(handle int32) []byte {
	tree := lookup(handle)
	if tree == nil {
		return nil
	}
	raw, err := treeops.ListDeclarations(tree)
	if err != nil {
		logging.LogCoreError(log, "list_declarations", err)
		return nil
	}
	return raw
}

// Canonical is `canonical(tree, source_map_filename?, mangled_map_json?,
// sources_json?) -> utf8-bytes | null`. sourcesJSON is accepted for
// surface compatibility but unused: this printer's source-map writer
// reads positions straight off the tree's own TextNodes rather than a
// side JSON map of original sources.
func Canonical(handle int32, sourceMapFilename string, mangledMapJSON []byte, sourcesJSON []byte) []byte {
	tree := lookup(handle)
	if tree == nil {
		return nil
	}
	opts := printer.Options{}
	if mangledMapJSON != nil {
		var m map[string]string
		if err := json.Unmarshal(mangledMapJSON, &m); err != nil {
			logging.LogCoreError(log, "canonical", &fsl.Error{Kind: fsl.ErrInvalidMangledNamesJSON, Message: err.Error()})
			return nil
		}
		opts.MangledNames = m
	}

	var out string
	if sourceMapFilename != "" {
		out = printer.PrintWithSourceMap(tree, sourceMapFilename, opts)
	} else {
		out = printer.Print(tree, opts)
	}
	return []byte(out)
}

// TypescriptDefinitions is `typescript_definitions(tree) -> utf8-bytes |
// null`.
func TypescriptDefinitions(handle int32) []byte {
	tree := lookup(handle)
	if tree == nil {
		return nil
	}
	return []byte(tsgen.Generate(tree))
}
