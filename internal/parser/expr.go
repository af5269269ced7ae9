package parser

import (
	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/lexer"
)

// scanExprBlob expects the current token to be the opening `{` of an FQL
// expression body and consumes through its matching `}`, capturing
// everything in between verbatim. It does not tokenize the contents with
// the full lexer: FQL expression syntax (string interpolation, template
// literals, nested braces in unrelated constructs) is deliberately never
// parsed (spec.md §4.1), so this is a standalone byte-level scan that only
// needs to track brace depth and string-literal boundaries well enough not
// to be fooled by a `}` or `"` inside a string.
func (p *parser) scanExprBlob() (fsl.ExprBlob, error) {
	open := p.pos()
	if !p.check(lexer.LBRACE) {
		return fsl.ExprBlob{}, fsl.ParseError(open, "{", describe(p.cur))
	}

	src := p.l.Source()
	startOffset := open.Offset
	i := startOffset
	depth := 0
scan:
	for i < len(src) {
		switch c := src[i]; {
		case c == '"':
			i++
			for i < len(src) && src[i] != '"' {
				if src[i] == '\\' && i+1 < len(src) {
					i++
				}
				i++
			}
			if i < len(src) {
				i++ // consume closing quote
			}
		case c == '{':
			depth++
			i++
		case c == '}':
			depth--
			i++
			if depth == 0 {
				break scan
			}
		default:
			i++
		}
	}
	if depth != 0 {
		return fsl.ExprBlob{}, fsl.ParseError(open, "closing }", "end of file")
	}
	text := src[startOffset+1 : i-1]
	blob := fsl.ExprBlob{Text: text, Pos: fsl.Position{
		File: open.File, Line: open.Line, Column: open.Column,
		Offset: startOffset, Length: i - startOffset,
	}}

	p.l.SeekTo(i)
	if err := p.advance(); err != nil {
		return fsl.ExprBlob{}, err
	}
	return blob, nil
}
