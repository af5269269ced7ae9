// Package parser builds an *fsl.SchemaTree from FSL source text. It is a
// straightforward recursive-descent parser over internal/lexer's token
// stream; the only precedence climbing it needs is for FQL types, where
// `|` (union) binds looser than postfix `?` (optional), which binds looser
// than postfix `<...>` (template application) (spec.md §4.1, §6.1).
//
// FQL expression bodies (compute/check/function/predicate blocks) are never
// parsed as FQL: the parser only scans a brace-balanced span, respecting
// string literals, and stores it verbatim as an ExprBlob (spec.md §9 "Lazy
// FQL walker" — the walker that later finds identifier references inside
// that span is WalkIdentifiers in walk.go, called by internal/linker and
// internal/doctor).
package parser

import (
	"fmt"

	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/lexer"
)

// Parse lexes and parses a single FSL source file into a new tree with its
// own allocator. On a parse error the partially built tree is disposed
// before returning, so callers never have to clean up a half-built tree.
func Parse(file, src string) (*fsl.SchemaTree, error) {
	tree := fsl.NewTree()
	if err := parseInto(tree, file, src); err != nil {
		tree.Dispose()
		return nil, err
	}
	return tree, nil
}

// ParseInto lexes and parses src, appending its declarations and extras
// into an existing tree, attributing new nodes to tree.Alloc.
// internal/loader does not use it: it parses each file into its own tree
// with Parse and clones the declarations into the merged tree.
func ParseInto(tree *fsl.SchemaTree, file, src string) error {
	return parseInto(tree, file, src)
}

func parseInto(tree *fsl.SchemaTree, file, src string) error {
	p := &parser{l: lexer.New(file, src), alloc: tree.Alloc, file: file}
	if err := p.advance(); err != nil {
		return err
	}
	for p.cur.Type != lexer.EOF {
		p.flushExtras(tree)
		decl, err := p.parseDeclaration()
		if err != nil {
			return err
		}
		tree.AddDecl(decl)
	}
	p.flushExtras(tree)
	return nil
}

type parser struct {
	l     *lexer.Lexer
	alloc *fsl.Allocator
	file  string
	cur   lexer.Token
}

func (p *parser) advance() error {
	tok, err := p.l.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// flushExtras drains any comments/blank runs the lexer buffered while
// scanning up to the current token and anchors them to the tree, matching
// spec.md §4.5's "anchored to the node immediately following" rule.
func (p *parser) flushExtras(tree *fsl.SchemaTree) {
	for _, e := range p.l.TakeExtras() {
		tree.AddExtra(fsl.NewExtra(e.Text, pos(p.file, e.Pos)))
	}
}

func pos(file string, p fsl.Position) fsl.Position {
	p.File = file
	return p
}

func (p *parser) pos() fsl.Position { return p.cur.Pos }

func (p *parser) check(t lexer.TokenType) bool { return p.cur.Type == t }

func (p *parser) match(t lexer.TokenType) (bool, error) {
	if p.cur.Type != t {
		return false, nil
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// expect consumes the current token if it matches t, else returns a
// ParseError anchored at the offending token.
func (p *parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.cur.Type != t {
		return lexer.Token{}, fsl.ParseError(p.pos(), t.String(), describe(p.cur))
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func describe(t lexer.Token) string {
	if t.Type == lexer.EOF {
		return "end of file"
	}
	if t.Text == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%q", t.Text)
}

func (p *parser) text() fsl.TextNode {
	tp := pos(p.file, p.cur.Pos)
	return fsl.NewTextNode(p.alloc, p.cur.Text, &tp)
}

// parseDeclaration parses one top-level access-provider/collection/
// function/role block.
func (p *parser) parseDeclaration() (*fsl.Declaration, error) {
	start := p.pos()
	switch p.cur.Type {
	case lexer.KwAccessProvider:
		d, err := p.parseAccessProvider()
		if err != nil {
			return nil, err
		}
		return &fsl.Declaration{Kind: fsl.KindAccessProvider, Pos: start, AccessProvider: d}, nil
	case lexer.KwCollection:
		d, err := p.parseCollection()
		if err != nil {
			return nil, err
		}
		return &fsl.Declaration{Kind: fsl.KindCollection, Pos: start, Collection: d}, nil
	case lexer.KwFunction:
		d, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		return &fsl.Declaration{Kind: fsl.KindFunction, Pos: start, Function: d}, nil
	case lexer.KwRole:
		d, err := p.parseRole()
		if err != nil {
			return nil, err
		}
		return &fsl.Declaration{Kind: fsl.KindRole, Pos: start, Role: d}, nil
	default:
		return nil, fsl.ParseError(p.pos(), "access provider, collection, function, or role", describe(p.cur))
	}
}

func (p *parser) parseAccessProvider() (*fsl.AccessProviderDecl, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name := p.text()
	if _, err := p.expect(lexer.IDENT); err != nil {
		return nil, err
	}
	out := &fsl.AccessProviderDecl{Name: name}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	for !p.check(lexer.RBRACE) {
		switch p.cur.Text {
		case "issuer":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return nil, err
			}
			v := p.text()
			if _, err := p.expect(lexer.STRING); err != nil {
				return nil, err
			}
			out.Issuer = &v
		case "jwks_uri":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return nil, err
			}
			v := p.text()
			if _, err := p.expect(lexer.STRING); err != nil {
				return nil, err
			}
			out.JWKSURI = &v
		case "ttl":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return nil, err
			}
			v := p.text()
			if _, err := p.expect(lexer.STRING); err != nil {
				return nil, err
			}
			out.TTL = &v
		case "roles":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.LBRACKET); err != nil {
				return nil, err
			}
			for !p.check(lexer.RBRACKET) {
				out.Roles = append(out.Roles, p.text())
				if _, err := p.expect(lexer.IDENT); err != nil {
					return nil, err
				}
				if _, err := p.match(lexer.COMMA); err != nil {
					return nil, err
				}
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			return nil, fsl.ParseError(p.pos(), "issuer, jwks_uri, ttl, or roles", describe(p.cur))
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return out, nil
}
