package parser

import (
	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/lexer"
)

func (p *parser) parseCollection() (*fsl.CollectionDecl, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name := p.text()
	if _, err := p.expect(lexer.IDENT); err != nil {
		return nil, err
	}
	out := &fsl.CollectionDecl{Name: name}

	if ok, err := p.match(lexer.KwAs); err != nil {
		return nil, err
	} else if ok {
		alias, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out.Alias = alias
	}

	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	for !p.check(lexer.RBRACE) {
		if err := p.parseCollectionMember(out); err != nil {
			return nil, err
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseCollectionMember(c *fsl.CollectionDecl) error {
	switch p.cur.Type {
	case lexer.KwCompute:
		return p.parseComputedField(c)
	case lexer.KwUnique:
		return p.parseUniqueConstraint(c)
	case lexer.KwCheck:
		return p.parseCheckConstraint(c)
	case lexer.KwIndex:
		return p.parseIndex(c)
	case lexer.KwMigrations:
		return p.parseMigrations(c)
	case lexer.KwHistoryDays:
		return p.parseIntSetting(&c.HistoryDays)
	case lexer.KwTTLDays:
		return p.parseIntSetting(&c.TTLDays)
	case lexer.IDENT:
		if p.cur.Text == "document_ttls" {
			if err := p.advance(); err != nil {
				return err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return err
			}
			v, err := p.parseBool()
			if err != nil {
				return err
			}
			c.DocumentTTLs = v
			return nil
		}
		return p.parseField(c)
	default:
		return fsl.ParseError(p.pos(), "a field, compute, unique, check, index, migrations, history_days, or ttl_days", describe(p.cur))
	}
}

func (p *parser) parseBool() (bool, error) {
	switch p.cur.Type {
	case lexer.KwTrue:
		return true, p.advance()
	case lexer.KwFalse:
		return false, p.advance()
	default:
		return false, fsl.ParseError(p.pos(), "true or false", describe(p.cur))
	}
}

func (p *parser) parseIntSetting(dst **int64) error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return err
	}
	n, err := p.parseIntLiteral()
	if err != nil {
		return err
	}
	*dst = &n
	return nil
}

func (p *parser) parseIntLiteral() (int64, error) {
	tok, err := p.expect(lexer.INT)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, c := range []byte(tok.Text) {
		n = n*10 + int64(c-'0')
	}
	return n, nil
}

func (p *parser) parseField(c *fsl.CollectionDecl) error {
	name := p.text()
	if _, err := p.expect(lexer.IDENT); err != nil {
		return err
	}
	var typ *fsl.FQLType
	if p.check(lexer.COLON) {
		if err := p.advance(); err != nil {
			return err
		}
		t, err := p.parseType()
		if err != nil {
			return err
		}
		typ = t
	}
	c.Fields = append(c.Fields, fsl.FieldDecl{Name: name, Type: typ})
	return nil
}

func (p *parser) parseComputedField(c *fsl.CollectionDecl) error {
	if err := p.advance(); err != nil {
		return err
	}
	name := p.text()
	if _, err := p.expect(lexer.IDENT); err != nil {
		return err
	}
	var typ *fsl.FQLType
	if p.check(lexer.COLON) {
		if err := p.advance(); err != nil {
			return err
		}
		t, err := p.parseType()
		if err != nil {
			return err
		}
		typ = t
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return err
	}
	expr, err := p.scanExprBlob()
	if err != nil {
		return err
	}
	c.ComputedFields = append(c.ComputedFields, fsl.ComputedFieldDecl{Name: name, Type: typ, Expr: expr})
	return nil
}

func (p *parser) parseUniqueConstraint(c *fsl.CollectionDecl) error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.LBRACKET); err != nil {
		return err
	}
	var fields []fsl.TextNode
	for !p.check(lexer.RBRACKET) {
		fields = append(fields, p.text())
		if _, err := p.expect(lexer.IDENT); err != nil {
			return err
		}
		if _, err := p.match(lexer.COMMA); err != nil {
			return err
		}
	}
	if err := p.advance(); err != nil {
		return err
	}
	c.Constraints = append(c.Constraints, fsl.ConstraintDecl{Kind: fsl.ConstraintUnique, Fields: fields})
	return nil
}

func (p *parser) parseCheckConstraint(c *fsl.CollectionDecl) error {
	if err := p.advance(); err != nil {
		return err
	}
	expr, err := p.scanExprBlob()
	if err != nil {
		return err
	}
	c.Constraints = append(c.Constraints, fsl.ConstraintDecl{Kind: fsl.ConstraintCheck, Predicate: &expr})
	return nil
}

func (p *parser) parseIndex(c *fsl.CollectionDecl) error {
	if err := p.advance(); err != nil {
		return err
	}
	name := p.text()
	if _, err := p.expect(lexer.IDENT); err != nil {
		return err
	}
	idx := fsl.IndexDecl{Name: name}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return err
	}
	for !p.check(lexer.RBRACE) {
		switch p.cur.Text {
		case "terms":
			if err := p.advance(); err != nil {
				return err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return err
			}
			terms, err := p.parseIdentList()
			if err != nil {
				return err
			}
			idx.Terms = terms
		case "values":
			if err := p.advance(); err != nil {
				return err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return err
			}
			values, err := p.parseIdentList()
			if err != nil {
				return err
			}
			idx.Values = values
		case "unique":
			if err := p.advance(); err != nil {
				return err
			}
			if _, err := p.expect(lexer.ASSIGN); err != nil {
				return err
			}
			v, err := p.parseBool()
			if err != nil {
				return err
			}
			idx.Unique = v
		default:
			return fsl.ParseError(p.pos(), "terms, values, or unique", describe(p.cur))
		}
	}
	if err := p.advance(); err != nil {
		return err
	}
	c.Indexes = append(c.Indexes, idx)
	return nil
}

func (p *parser) parseIdentList() ([]fsl.TextNode, error) {
	if _, err := p.expect(lexer.LBRACKET); err != nil {
		return nil, err
	}
	var out []fsl.TextNode
	for !p.check(lexer.RBRACKET) {
		out = append(out, p.text())
		if _, err := p.expect(lexer.IDENT); err != nil {
			return nil, err
		}
		if _, err := p.match(lexer.COMMA); err != nil {
			return nil, err
		}
	}
	return out, p.advance()
}

func (p *parser) parseMigrations(c *fsl.CollectionDecl) error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return err
	}
	expr, err := p.scanExprBlob()
	if err != nil {
		return err
	}
	c.Migrations = &expr
	return nil
}
