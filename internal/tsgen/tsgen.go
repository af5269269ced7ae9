// Package tsgen renders Collection declarations as TypeScript .d.ts
// interfaces, following the FQLType -> TypeScript mapping table of
// spec.md §11. It is the one producer of the TypeScript output spec.md
// §1 lists as output (b); the styling/formatting of arbitrary TS is out
// of scope, but this mapping is not.
package tsgen

import (
	"sort"
	"strings"

	"github.com/schemakit/fsl"
)

// namedTS maps FQLNamed identifiers with a dedicated TypeScript
// primitive onto that primitive. Names absent from this table are
// emitted verbatim, on the assumption they name another declared
// collection or a template parameter already in scope.
var namedTS = map[string]string{
	"Any":     "any",
	"Null":    "null",
	"String":  "string",
	"Number":  "number",
	"Int":     "number",
	"Double":  "number",
	"Long":    "number",
	"Boolean": "boolean",
	"Time":    "Date",
	"Date":    "Date",
	"Bytes":   "Uint8Array",
}

// templateTS renames FQLTemplate type constructors that don't carry
// their FSL name over to TypeScript unchanged.
var templateTS = map[string]string{
	"Ref": "Reference",
}

// Generate renders every Collection declaration in tree as a TypeScript
// interface, in declaration order (callers wanting alphabetical output
// should run treeops.Sort first). The result is a single .d.ts text
// blob.
func Generate(tree *fsl.SchemaTree) string {
	var b strings.Builder
	first := true
	for _, d := range tree.Decls {
		if d.Kind != fsl.KindCollection {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false
		writeCollection(&b, d.Collection)
	}
	return b.String()
}

func writeCollection(b *strings.Builder, c *fsl.CollectionDecl) {
	if c.Alias != nil {
		b.WriteString("export type ")
		b.WriteString(c.Name.Text)
		b.WriteString(" = ")
		b.WriteString(typeString(c.Alias))
		b.WriteString(";\n")
		return
	}

	b.WriteString("export interface ")
	b.WriteString(c.Name.Text)
	b.WriteString(" {\n")
	for _, f := range c.Fields {
		b.WriteString("  ")
		b.WriteString(f.Name.Text)
		if f.Type.Tag() == fsl.FQLOptional {
			b.WriteString("?: ")
			b.WriteString(typeString(f.Type))
		} else {
			b.WriteString(": ")
			b.WriteString(typeString(f.Type))
		}
		b.WriteString(";\n")
	}
	for _, cf := range c.ComputedFields {
		b.WriteString("  readonly ")
		b.WriteString(cf.Name.Text)
		b.WriteString(": ")
		b.WriteString(typeString(cf.Type))
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}

// typeString renders a single FQLType per the mapping table. A nil type
// (field left untyped in source, meaning "unknown") renders as `unknown`.
func typeString(t *fsl.FQLType) string {
	if t == nil {
		return "unknown"
	}
	switch t.Tag() {
	case fsl.FQLNamed:
		if ts, ok := namedTS[t.Named]; ok {
			return ts
		}
		return t.Named
	case fsl.FQLObject:
		return objectTypeString(t)
	case fsl.FQLUnion:
		return typeString(t.UnionLHS) + " | " + typeString(t.UnionRHS)
	case fsl.FQLOptional:
		return typeString(t.Inner) + " | undefined"
	case fsl.FQLTemplate:
		name := t.TemplateName
		if ts, ok := templateTS[name]; ok {
			name = ts
		}
		params := make([]string, len(t.TemplateParams))
		for i, p := range t.TemplateParams {
			params[i] = typeString(p)
		}
		return name + "<" + strings.Join(params, ", ") + ">"
	case fsl.FQLTuple:
		elems := make([]string, len(t.TupleTypes))
		for i, e := range t.TupleTypes {
			elems[i] = typeString(e)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case fsl.FQLStringLiteral:
		return "\"" + t.StringLit + "\""
	case fsl.FQLNumberLiteral:
		return t.NumberLit
	case fsl.FQLFunction:
		return functionTypeString(t)
	case fsl.FQLIsolated:
		return typeString(t.Inner)
	default:
		return "unknown"
	}
}

func objectTypeString(t *fsl.FQLType) string {
	if len(t.ObjectFields) == 0 && t.Wildcard != nil {
		return "{ [key: string]: " + typeString(t.Wildcard) + " }"
	}

	fields := make([]string, 0, len(t.ObjectFields)+1)
	for _, f := range t.ObjectFields {
		if f.Optional {
			fields = append(fields, f.Key+"?: "+typeString(f.Type))
		} else {
			fields = append(fields, f.Key+": "+typeString(f.Type))
		}
	}
	if t.Wildcard != nil {
		fields = append(fields, "[key: string]: "+typeString(t.Wildcard))
	}
	return "{ " + strings.Join(fields, "; ") + " }"
}

func functionTypeString(t *fsl.FQLType) string {
	params := make([]string, len(t.FuncParams.Types))
	for i, p := range t.FuncParams.Types {
		name := "a" + indexSuffix(i)
		if t.FuncParams.Variadic && i == len(t.FuncParams.Types)-1 {
			params[i] = "..." + name + ": " + typeString(p) + "[]"
		} else {
			params[i] = name + ": " + typeString(p)
		}
	}
	return "(" + strings.Join(params, ", ") + ") => " + typeString(t.FuncReturn)
}

func indexSuffix(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return string(letters[i])
	}
	return string(rune('a' + i%26))
}

// CollectionNames returns the names of every Collection declaration in
// tree, sorted. Used by callers wanting a stable manifest alongside the
// generated .d.ts text.
func CollectionNames(tree *fsl.SchemaTree) []string {
	var names []string
	for _, d := range tree.Decls {
		if d.Kind == fsl.KindCollection {
			names = append(names, d.Collection.Name.Text)
		}
	}
	sort.Strings(names)
	return names
}
