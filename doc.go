// Package fsl implements the data model for FSL (the Fauna-flavored schema
// language this toolchain compiles): access providers, collections, user
// defined functions and roles, plus the embedded FQL type grammar used for
// field and parameter types.
//
// The package is intentionally light on behavior. Parsing lives in
// internal/parser, canonical printing in internal/printer, UDF linking in
// internal/linker, role consolidation in internal/rolemerge, and the
// filter/remove/sort family in internal/treeops. This package only owns the
// tree shape and the allocator/ownership bookkeeping those packages mutate
// in place.
//
// # Ownership
//
// Every SchemaTree carries an Allocator. Strings and nodes reachable from a
// tree's declarations are considered owned by that tree's allocator, except
// Extras, which are reference-counted and may be shared across trees created
// by Merge. Operations that combine trees (internal/loader, the FFI merge)
// clone each declaration into the destination tree's allocator; no
// operation compares allocators, and Allocator.Same is available to callers
// that need to.
package fsl
