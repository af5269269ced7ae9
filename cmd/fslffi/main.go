// Command fslffi builds the cgo `//export` C-ABI boundary described in
// spec.md §6.2, as a shared C archive (`go build -buildmode=c-archive`).
// Every exported function here does nothing but convert C types at the
// edge and delegate straight through to internal/ffi, which holds the
// actual handle table and is tested with the ordinary Go toolchain
// (see internal/ffi's package doc).
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/schemakit/fsl/internal/ffi"
)

// bytesToC copies a Go []byte into a C.malloc'd buffer the host must
// release with fsl_free_bytes. A nil slice yields a nil pointer and a
// zero length, matching the FFI's null-return convention.
func bytesToC(b []byte) (*C.char, C.int32_t) {
	if b == nil {
		return nil, 0
	}
	ptr := C.malloc(C.size_t(len(b)))
	if ptr == nil {
		return nil, 0
	}
	if len(b) > 0 {
		copy(unsafe.Slice((*byte)(ptr), len(b)), b)
	}
	return (*C.char)(ptr), C.int32_t(len(b))
}

func cBytes(ptr *C.char, length C.int32_t) []byte {
	if ptr == nil || length == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(ptr), C.int(length))
}

//export fsl_free_bytes
func fsl_free_bytes(ptr *C.char) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}

//export fsl_parse
func fsl_parse(src *C.char, srcLen C.int32_t, filename *C.char) C.int32_t {
	return C.int32_t(ffi.Parse(cBytes(src, srcLen), C.GoString(filename)))
}

//export fsl_clone
func fsl_clone(handle C.int32_t) C.int32_t {
	return C.int32_t(ffi.Clone(int32(handle)))
}

//export fsl_dispose
func fsl_dispose(handle C.int32_t) {
	ffi.Dispose(int32(handle))
}

//export fsl_length
func fsl_length(handle C.int32_t) C.int32_t {
	return C.int32_t(ffi.Length(int32(handle)))
}

//export fsl_sort
func fsl_sort(handle C.int32_t) {
	ffi.Sort(int32(handle))
}

//export fsl_merge_trees
func fsl_merge_trees(a, b C.int32_t) C.int32_t {
	return C.int32_t(ffi.MergeTrees(int32(a), int32(b)))
}

//export fsl_link_functions
func fsl_link_functions(handle C.int32_t, outLen *C.int32_t) *C.char {
	raw := ffi.LinkFunctions(int32(handle))
	ptr, n := bytesToC(raw)
	*outLen = n
	return ptr
}

//export fsl_merge_roles
func fsl_merge_roles(handle C.int32_t) C.int32_t {
	return C.int32_t(ffi.MergeRoles(int32(handle)))
}

//export fsl_filter_by_kind
func fsl_filter_by_kind(handle C.int32_t, kind *C.char) C.int32_t {
	return C.int32_t(ffi.FilterByKind(int32(handle), C.GoString(kind)))
}

//export fsl_remove_declaration
func fsl_remove_declaration(handle C.int32_t, kind, name *C.char) C.int32_t {
	return C.int32_t(ffi.RemoveDeclaration(int32(handle), C.GoString(kind), C.GoString(name)))
}

//export fsl_strip_roles_resource
func fsl_strip_roles_resource(handle C.int32_t, name *C.char) {
	ffi.StripRolesResource(int32(handle), C.GoString(name))
}

//export fsl_list_declarations
func fsl_list_declarations(handle C.int32_t, outLen *C.int32_t) *C.char {
	raw := ffi.ListDeclarations(int32(handle))
	ptr, n := bytesToC(raw)
	*outLen = n
	return ptr
}

//export fsl_canonical
func fsl_canonical(handle C.int32_t, sourceMapFilename *C.char, mangledMapJSON *C.char, mangledMapJSONLen C.int32_t, outLen *C.int32_t) *C.char {
	raw := ffi.Canonical(int32(handle), C.GoString(sourceMapFilename), cBytes(mangledMapJSON, mangledMapJSONLen), nil)
	ptr, n := bytesToC(raw)
	*outLen = n
	return ptr
}

//export fsl_typescript_definitions
func fsl_typescript_definitions(handle C.int32_t, outLen *C.int32_t) *C.char {
	raw := ffi.TypescriptDefinitions(int32(handle))
	ptr, n := bytesToC(raw)
	*outLen = n
	return ptr
}

func main() {}
