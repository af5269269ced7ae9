// Command fsl is the CLI front end for the FSL schema toolchain: it wraps
// every operation in the FFI surface (parse, canonical print, link,
// merge-roles, filter, remove, strip-resource, typescript, list) plus a
// doctor health-check command and a local introspection server.
//
// Usage:
//
//	fsl [flags] <command>
//
// Run "fsl help" for the full command list.
package main

func main() {
	Execute()
}
