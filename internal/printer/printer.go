// Package printer renders an *fsl.SchemaTree back to canonical FSL text.
// The output is both the linker's hash input (spec.md §4.3) and the public
// "fsl canonical" CLI output, so member ordering and spacing are fixed
// rather than cosmetic: two trees that are code-equal always print
// byte-identical text.
package printer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/schemakit/fsl"
)

// Options controls non-default printer behavior.
type Options struct {
	// Sort orders declarations by kind tag then by name rather than
	// preserving source order (spec.md §4.2 rule 2).
	Sort bool
	// MangledNames, when non-nil, is consulted by the source-map writer to
	// recover a UDF's original name for the "symbol" field of a mapping.
	MangledNames map[string]string
}

// Print renders tree as canonical FSL text with no source map.
func Print(tree *fsl.SchemaTree, opts Options) string {
	var b strings.Builder
	p := &printer{out: &b}
	p.printTree(tree, opts)
	return b.String()
}

// PrintWithSourceMap renders tree and also returns a base64 inline
// source-map comment appended to the output, recording
// (generated-line, generated-column) -> (original-file, original-line,
// original-column, optional-symbol) for every declaration and identifier
// write the printer performs (spec.md §4.2 "Source map").
func PrintWithSourceMap(tree *fsl.SchemaTree, destFile string, opts Options) string {
	var b strings.Builder
	p := &printer{out: &b, recordMap: true, destFile: destFile, mangled: invertMangledNames(opts.MangledNames)}
	p.printTree(tree, opts)
	b.WriteString("\n")
	b.WriteString(p.sourceMapComment())
	return b.String()
}

// invertMangledNames flips the {original: mangled} map link_functions
// produces into {mangled: original}, since the printer only ever records a
// mapping's symbol as the identifier text it just wrote — which, for a
// linked UDF reference, is already the mangled name.
func invertMangledNames(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	inv := make(map[string]string, len(m))
	for original, mangled := range m {
		inv[mangled] = original
	}
	return inv
}

type mapping struct {
	genLine, genCol int
	file            string
	line, col       int
	symbol          string
}

type printer struct {
	out       *strings.Builder
	line, col int
	indent    int

	recordMap bool
	destFile  string
	mangled   map[string]string // mangled name -> original name
	mappings  []mapping
}

func (p *printer) write(s string) {
	for _, r := range s {
		p.out.WriteRune(r)
		if r == '\n' {
			p.line++
			p.col = 0
		} else {
			p.col++
		}
	}
}

func (p *printer) writeIndent() { p.write(strings.Repeat("  ", p.indent)) }

func (p *printer) mark(pos fsl.Position, symbol string) {
	if !p.recordMap || pos.IsZero() {
		return
	}
	p.mappings = append(p.mappings, mapping{
		genLine: p.line, genCol: p.col,
		file: pos.File, line: pos.Line, col: pos.Column, symbol: symbol,
	})
}

func (p *printer) printTree(tree *fsl.SchemaTree, opts Options) {
	decls := tree.Decls
	if opts.Sort {
		decls = sortedDecls(decls)
	}
	// Extras are anchored to the declaration that follows them in source
	// order; printing by a sorted order would scatter comments away from
	// their original neighbor, so extras only re-emit in unsorted mode.
	extrasByIndex := anchorExtras(tree, decls, opts.Sort)
	for i, d := range decls {
		if !opts.Sort {
			for _, e := range extrasByIndex[i] {
				p.write(e.Text)
				p.write("\n")
			}
		}
		p.printDecl(d)
		if i < len(decls)-1 {
			p.write("\n")
		}
	}
}

// anchorExtras matches each extras blob to the following declaration by
// comparing source offsets; in sorted mode extras are simply dropped from
// the normal stream (they still exist on the tree and survive a later
// unsorted print).
func anchorExtras(tree *fsl.SchemaTree, decls []*fsl.Declaration, sorted bool) map[int][]*fsl.Extra {
	out := map[int][]*fsl.Extra{}
	if sorted {
		return out
	}
	for _, e := range tree.Extras {
		best := -1
		for i, d := range decls {
			if d.Pos.Offset >= e.Pos.Offset {
				best = i
				break
			}
		}
		if best >= 0 {
			out[best] = append(out[best], e)
		}
	}
	return out
}

func sortedDecls(decls []*fsl.Declaration) []*fsl.Declaration {
	out := make([]*fsl.Declaration, len(decls))
	copy(out, decls)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

func (p *printer) printDecl(d *fsl.Declaration) {
	switch d.Kind {
	case fsl.KindAccessProvider:
		p.printAccessProvider(d.AccessProvider)
	case fsl.KindCollection:
		p.printCollection(d.Collection)
	case fsl.KindFunction:
		p.printFunction(d.Function)
	case fsl.KindRole:
		p.printRole(d.Role)
	}
}

func (p *printer) ident(t fsl.TextNode) {
	if t.Pos != nil {
		p.mark(*t.Pos, t.Text)
	}
	p.write(t.Text)
}

func (p *printer) str(t fsl.TextNode) {
	if t.Pos != nil {
		p.mark(*t.Pos, "")
	}
	p.write(strconv.Quote(t.Text))
}

func (p *printer) printAccessProvider(a *fsl.AccessProviderDecl) {
	p.write("access provider ")
	p.ident(a.Name)
	p.write(" {\n")
	p.indent++
	if a.Issuer != nil {
		p.writeIndent()
		p.write("issuer = ")
		p.str(*a.Issuer)
		p.write("\n")
	}
	if a.JWKSURI != nil {
		p.writeIndent()
		p.write("jwks_uri = ")
		p.str(*a.JWKSURI)
		p.write("\n")
	}
	if a.TTL != nil {
		p.writeIndent()
		p.write("ttl = ")
		p.str(*a.TTL)
		p.write("\n")
	}
	if len(a.Roles) > 0 {
		p.writeIndent()
		p.write("roles = [")
		for i, r := range a.Roles {
			if i > 0 {
				p.write(", ")
			}
			p.ident(r)
		}
		p.write("]\n")
	}
	p.indent--
	p.write("}\n")
}

func (p *printer) printExprBlob(e fsl.ExprBlob) {
	p.write("{ ")
	p.mark(e.Pos, "")
	p.write(reindentBlob(e.Text, p.indent))
	p.write(" }")
}

// reindentBlob re-renders a verbatim FQL expression blob so its
// continuation lines land at the printer's current depth: the blob's own
// minimal common indentation is stripped from every line after the
// first, then replaced with indent levels of two spaces each. The first
// line needs no re-indentation since it's written straight after the
// opening "{ " on the current line.
func reindentBlob(text string, indent int) string {
	trimmed := strings.TrimSpace(text)
	lines := strings.Split(trimmed, "\n")
	if len(lines) == 1 {
		return trimmed
	}

	minIndent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}

	pad := strings.Repeat("  ", indent)
	var b strings.Builder
	b.WriteString(lines[0])
	for _, line := range lines[1:] {
		b.WriteString("\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		stripped := line
		if len(line) >= minIndent {
			stripped = line[minIndent:]
		} else {
			stripped = strings.TrimLeft(line, " \t")
		}
		b.WriteString(pad)
		b.WriteString(stripped)
	}
	return b.String()
}

func (p *printer) printType(t *fsl.FQLType) {
	if t == nil {
		p.write("unknown")
		return
	}
	switch t.Tag() {
	case fsl.FQLNamed:
		p.write(t.Named)
	case fsl.FQLObject:
		p.write("{ ")
		for i, f := range t.ObjectFields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Key)
			if f.Optional {
				p.write("?")
			}
			p.write(": ")
			p.printType(f.Type)
		}
		if t.Wildcard != nil {
			if len(t.ObjectFields) > 0 {
				p.write(", ")
			}
			p.write("*: ")
			p.printType(t.Wildcard)
		}
		p.write(" }")
	case fsl.FQLUnion:
		p.printType(t.UnionLHS)
		p.write(" | ")
		p.printType(t.UnionRHS)
	case fsl.FQLOptional:
		p.printType(t.Inner)
		p.write("?")
	case fsl.FQLTemplate:
		p.write(t.TemplateName)
		p.write("<")
		for i, pt := range t.TemplateParams {
			if i > 0 {
				p.write(", ")
			}
			p.printType(pt)
		}
		p.write(">")
	case fsl.FQLTuple:
		p.write("[")
		for i, pt := range t.TupleTypes {
			if i > 0 {
				p.write(", ")
			}
			p.printType(pt)
		}
		p.write("]")
	case fsl.FQLStringLiteral:
		p.write(strconv.Quote(t.StringLit))
	case fsl.FQLNumberLiteral:
		p.write(t.NumberLit)
	case fsl.FQLFunction:
		p.write("(")
		for i, pt := range t.FuncParams.Types {
			if i > 0 {
				p.write(", ")
			}
			if t.FuncParams.Variadic && i == len(t.FuncParams.Types)-1 {
				p.write("*")
			}
			p.printType(pt)
		}
		p.write(") => ")
		p.printType(t.FuncReturn)
	case fsl.FQLIsolated:
		p.write("*")
		p.printType(t.Inner)
	default:
		p.write(fmt.Sprintf("/* unknown type tag %v */", t.Tag()))
	}
}
