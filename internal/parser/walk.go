package parser

import "github.com/schemakit/fsl"

// IdentRef is one identifier-like token found by WalkIdentifiers, with its
// byte range within the blob's Text so the linker can splice in a renamed
// reference without re-scanning.
type IdentRef struct {
	Name  string
	Start int // byte offset into blob.Text
	End   int // exclusive
}

// WalkIdentifiers performs the lazy scan spec.md §4.1 calls the "expression
// walker": a single pass over an FQL expression blob that yields every
// bare identifier, skipping string literals, number literals, and
// identifiers that are actually object-property accesses (preceded by `.`)
// since those name fields, not functions or collections.
//
// This is deliberately not a tokenizer reuse: the walker only needs enough
// of FQL's lexical grammar to avoid false positives inside strings, and
// runs over already-captured text rather than re-driving internal/lexer.
func WalkIdentifiers(text string) []IdentRef {
	var refs []IdentRef
	i := 0
	n := len(text)
	prevSignificant := byte(0)
	for i < n {
		c := text[i]
		switch {
		case c == '"':
			i++
			for i < n && text[i] != '"' {
				if text[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
			if i < n {
				i++
			}
			prevSignificant = '"'
		case isIdentStart(c):
			start := i
			i++
			for i < n && isIdentPart(text[i]) {
				i++
			}
			if prevSignificant != '.' {
				refs = append(refs, IdentRef{Name: text[start:i], Start: start, End: i})
			}
			prevSignificant = text[i-1]
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		default:
			prevSignificant = c
			i++
		}
	}
	return refs
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// RewriteBlob replaces every occurrence of the identifier old (found via
// WalkIdentifiers, whole-token matches only) with new in blob's text,
// returning a new ExprBlob with the same position (the span widens or
// narrows with the rename, but its start stays anchored).
func RewriteBlob(blob fsl.ExprBlob, oldName, newName string) fsl.ExprBlob {
	refs := WalkIdentifiers(blob.Text)
	if len(refs) == 0 {
		return blob
	}
	var b []byte
	last := 0
	for _, r := range refs {
		if r.Name != oldName {
			continue
		}
		b = append(b, blob.Text[last:r.Start]...)
		b = append(b, newName...)
		last = r.End
	}
	b = append(b, blob.Text[last:]...)
	return fsl.ExprBlob{Text: string(b), Pos: blob.Pos}
}
