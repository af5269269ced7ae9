package parser

import (
	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/lexer"
)

func (p *parser) parseFunction() (*fsl.FunctionDecl, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name := p.text()
	if _, err := p.expect(lexer.IDENT); err != nil {
		return nil, err
	}
	out := &fsl.FunctionDecl{Name: name}

	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	for !p.check(lexer.RPAREN) {
		pname := p.text()
		if _, err := p.expect(lexer.IDENT); err != nil {
			return nil, err
		}
		var ptype *fsl.FQLType
		if p.check(lexer.COLON) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			ptype = t
		}
		out.Params = append(out.Params, fsl.ParamDecl{Name: pname, Type: ptype})
		if _, err := p.match(lexer.COMMA); err != nil {
			return nil, err
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.check(lexer.COLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out.Return = t
	}

	if p.cur.Type == lexer.KwRole {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		r := p.text()
		if _, err := p.expect(lexer.IDENT); err != nil {
			return nil, err
		}
		out.Role = &r
	}

	body, err := p.scanExprBlob()
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}
