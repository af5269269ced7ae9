package parser

import (
	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/lexer"
)

// parseType parses an embedded FQL type. Precedence from loosest to
// tightest, per spec.md §4.1: union (`|`, left-associative) below optional
// (postfix `?`) below postfix application (`T<...>` template).
func (p *parser) parseType() (*fsl.FQLType, error) {
	return p.parseUnionType()
}

func (p *parser) parseUnionType() (*fsl.FQLType, error) {
	start := p.pos()
	lhs, err := p.parseOptionalType()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := p.match(lexer.PIPE)
		if err != nil {
			return nil, err
		}
		if !ok {
			return lhs, nil
		}
		rhs, err := p.parseOptionalType()
		if err != nil {
			return nil, err
		}
		lhs = fsl.NewUnionType(lhs, rhs, start)
	}
}

func (p *parser) parseOptionalType() (*fsl.FQLType, error) {
	start := p.pos()
	inner, err := p.parseApplicationType()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := p.match(lexer.QUESTION)
		if err != nil {
			return nil, err
		}
		if !ok {
			return inner, nil
		}
		inner = fsl.NewOptionalType(inner, start)
	}
}

// parseApplicationType parses a primary type followed by zero or more
// postfix `<...>` template-parameter applications, e.g. `Ref<Doc<T>>`.
func (p *parser) parseApplicationType() (*fsl.FQLType, error) {
	start := p.pos()
	base, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.LT) {
		if base.Tag() != fsl.FQLNamed {
			return nil, fsl.ParseError(p.pos(), "a type name before '<'", describe(p.cur))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		var params []*fsl.FQLType
		for !p.check(lexer.GT) {
			pt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, pt)
			if _, err := p.match(lexer.COMMA); err != nil {
				return nil, err
			}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		base = fsl.NewTemplateType(base.Named, params, start)
	}
	return base, nil
}

func (p *parser) parsePrimaryType() (*fsl.FQLType, error) {
	start := p.pos()
	switch p.cur.Type {
	case lexer.STAR:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseApplicationType()
		if err != nil {
			return nil, err
		}
		return fsl.NewIsolatedType(inner, start), nil

	case lexer.LPAREN:
		return p.parseFunctionType(start)

	case lexer.LBRACKET:
		return p.parseTupleType(start)

	case lexer.LBRACE:
		return p.parseObjectType(start)

	case lexer.STRING:
		lit := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return fsl.NewStringLiteralType(lit, start), nil

	case lexer.INT, lexer.DECIMAL:
		lit := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return fsl.NewNumberLiteralType(lit, start), nil

	case lexer.IDENT:
		name := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return fsl.NewNamedType(name, start), nil

	default:
		return nil, fsl.ParseError(start, "a type", describe(p.cur))
	}
}

func (p *parser) parseFunctionType(start fsl.Position) (*fsl.FQLType, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var params fsl.FuncParams
	for !p.check(lexer.RPAREN) {
		if ok, err := p.match(lexer.STAR); err != nil {
			return nil, err
		} else if ok {
			params.Variadic = true
		}
		pt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params.Types = append(params.Types, pt)
		if _, err := p.match(lexer.COMMA); err != nil {
			return nil, err
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return fsl.NewFunctionType(params, ret, start), nil
}

func (p *parser) parseTupleType(start fsl.Position) (*fsl.FQLType, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var types []*fsl.FQLType
	for !p.check(lexer.RBRACKET) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if _, err := p.match(lexer.COMMA); err != nil {
			return nil, err
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return fsl.NewTupleType(types, start), nil
}

func (p *parser) parseObjectType(start fsl.Position) (*fsl.FQLType, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var fields []fsl.ObjectField
	var wildcard *fsl.FQLType
	for !p.check(lexer.RBRACE) {
		if ok, err := p.match(lexer.STAR); err != nil {
			return nil, err
		} else if ok {
			if _, err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			wt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			wildcard = wt
			if _, err := p.match(lexer.COMMA); err != nil {
				return nil, err
			}
			continue
		}
		key := p.cur.Text
		if _, err := p.expect(lexer.IDENT); err != nil {
			return nil, err
		}
		optional, err := p.match(lexer.QUESTION)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		ft, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, fsl.ObjectField{Key: key, Type: ft, Optional: optional})
		if _, err := p.match(lexer.COMMA); err != nil {
			return nil, err
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return fsl.NewObjectType(fields, wildcard, start), nil
}
