package parser

import (
	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/lexer"
)

func (p *parser) parseRole() (*fsl.RoleDecl, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name := p.text()
	if _, err := p.expect(lexer.IDENT); err != nil {
		return nil, err
	}
	out := &fsl.RoleDecl{Name: name}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	for !p.check(lexer.RBRACE) {
		switch p.cur.Type {
		case lexer.KwPrivileges:
			if err := p.parsePrivilegesBlock(out); err != nil {
				return nil, err
			}
		case lexer.KwMembership:
			if err := p.parseMembershipBlock(out); err != nil {
				return nil, err
			}
		default:
			return nil, fsl.ParseError(p.pos(), "privileges or membership", describe(p.cur))
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parsePrivilegesBlock(r *fsl.RoleDecl) error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return err
	}
	for !p.check(lexer.RBRACE) {
		if p.cur.Type != lexer.IDENT || p.cur.Text != "resource" {
			return fsl.ParseError(p.pos(), "resource", describe(p.cur))
		}
		if err := p.advance(); err != nil {
			return err
		}
		resource := p.text()
		if _, err := p.expect(lexer.STRING); err != nil {
			return err
		}
		priv := fsl.PrivilegeDecl{Resource: resource}
		if _, err := p.expect(lexer.LBRACE); err != nil {
			return err
		}
		for !p.check(lexer.RBRACE) {
			action, err := p.parseAction()
			if err != nil {
				return err
			}
			priv.Actions = append(priv.Actions, action)
		}
		if err := p.advance(); err != nil {
			return err
		}
		r.Privileges = append(r.Privileges, priv)
	}
	return p.advance()
}

var actionKeywords = map[string]fsl.ActionKind{
	"read":         fsl.ActionRead,
	"write":        fsl.ActionWrite,
	"create":       fsl.ActionCreate,
	"delete":       fsl.ActionDelete,
	"history_read": fsl.ActionHistoryRead,
	"call":         fsl.ActionCall,
}

func (p *parser) parseAction() (fsl.Action, error) {
	kind, ok := actionKeywords[p.cur.Text]
	if p.cur.Type != lexer.IDENT || !ok {
		return fsl.Action{}, fsl.ParseError(p.pos(), "read, write, create, delete, history_read, or call", describe(p.cur))
	}
	if err := p.advance(); err != nil {
		return fsl.Action{}, err
	}
	action := fsl.Action{Kind: kind}
	if p.check(lexer.ASSIGN) {
		if err := p.advance(); err != nil {
			return fsl.Action{}, err
		}
		expr, err := p.scanExprBlob()
		if err != nil {
			return fsl.Action{}, err
		}
		action.Predicate = &expr
	}
	return action, nil
}

func (p *parser) parseMembershipBlock(r *fsl.RoleDecl) error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return err
	}
	for !p.check(lexer.RBRACE) {
		if p.cur.Type != lexer.KwCollection {
			return fsl.ParseError(p.pos(), "collection", describe(p.cur))
		}
		if err := p.advance(); err != nil {
			return err
		}
		coll := p.text()
		if _, err := p.expect(lexer.STRING); err != nil {
			return err
		}
		m := fsl.MembershipDecl{Collection: coll}
		if p.check(lexer.LBRACE) {
			if err := p.advance(); err != nil {
				return err
			}
			for !p.check(lexer.RBRACE) {
				if p.cur.Text != "predicate" {
					return fsl.ParseError(p.pos(), "predicate", describe(p.cur))
				}
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
				m.Predicate = &expr
			}
			if err := p.advance(); err != nil {
				return err
			}
		}
		r.Memberships = append(r.Memberships, m)
	}
	return p.advance()
}
