package printer

import (
	"strconv"

	"github.com/schemakit/fsl"
)

func (p *printer) printCollection(c *fsl.CollectionDecl) {
	p.write("collection ")
	p.ident(c.Name)
	if c.Alias != nil {
		p.write(" as ")
		p.printType(c.Alias)
	}
	p.write(" {\n")
	p.indent++

	if c.HistoryDays != nil {
		p.writeIndent()
		p.write("history_days = ")
		p.write(strconv.FormatInt(*c.HistoryDays, 10))
		p.write("\n")
	}
	if c.TTLDays != nil {
		p.writeIndent()
		p.write("ttl_days = ")
		p.write(strconv.FormatInt(*c.TTLDays, 10))
		p.write("\n")
	}
	if c.DocumentTTLs {
		p.writeIndent()
		p.write("document_ttls = true\n")
	}
	for _, f := range c.Fields {
		p.writeIndent()
		p.ident(f.Name)
		p.write(": ")
		p.printType(f.Type)
		p.write("\n")
	}
	for _, cf := range c.ComputedFields {
		p.writeIndent()
		p.write("compute ")
		p.ident(cf.Name)
		if cf.Type != nil {
			p.write(": ")
			p.printType(cf.Type)
		}
		p.write(" = ")
		p.printExprBlob(cf.Expr)
		p.write("\n")
	}
	for _, cons := range c.Constraints {
		p.writeIndent()
		switch cons.Kind {
		case fsl.ConstraintUnique:
			p.write("unique [")
			for i, f := range cons.Fields {
				if i > 0 {
					p.write(", ")
				}
				p.ident(f)
			}
			p.write("]\n")
		case fsl.ConstraintCheck:
			p.write("check ")
			p.printExprBlob(*cons.Predicate)
			p.write("\n")
		}
	}
	for _, idx := range c.Indexes {
		p.writeIndent()
		p.write("index ")
		p.ident(idx.Name)
		p.write(" {\n")
		p.indent++
		if len(idx.Terms) > 0 {
			p.writeIndent()
			p.write("terms = [")
			for i, t := range idx.Terms {
				if i > 0 {
					p.write(", ")
				}
				p.ident(t)
			}
			p.write("]\n")
		}
		if len(idx.Values) > 0 {
			p.writeIndent()
			p.write("values = [")
			for i, v := range idx.Values {
				if i > 0 {
					p.write(", ")
				}
				p.ident(v)
			}
			p.write("]\n")
		}
		if idx.Unique {
			p.writeIndent()
			p.write("unique = true\n")
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	}
	if c.Migrations != nil {
		p.writeIndent()
		p.write("migrations = ")
		p.printExprBlob(*c.Migrations)
		p.write("\n")
	}

	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *printer) printFunction(f *fsl.FunctionDecl) {
	p.write("function ")
	p.ident(f.Name)
	p.write("(")
	for i, param := range f.Params {
		if i > 0 {
			p.write(", ")
		}
		p.ident(param.Name)
		if param.Type != nil {
			p.write(": ")
			p.printType(param.Type)
		}
	}
	p.write(")")
	if f.Return != nil {
		p.write(": ")
		p.printType(f.Return)
	}
	if f.Role != nil {
		p.write(" role = ")
		p.ident(*f.Role)
	}
	p.write(" ")
	p.printExprBlob(f.Body)
	p.write("\n")
}

func (p *printer) printRole(r *fsl.RoleDecl) {
	p.write("role ")
	p.ident(r.Name)
	p.write(" {\n")
	p.indent++
	if len(r.Privileges) > 0 {
		p.writeIndent()
		p.write("privileges {\n")
		p.indent++
		for _, priv := range r.Privileges {
			p.writeIndent()
			p.write("resource ")
			p.str(priv.Resource)
			p.write(" {\n")
			p.indent++
			for _, a := range priv.Actions {
				p.writeIndent()
				p.write(a.Kind.String())
				if a.Predicate != nil {
					p.write(" = ")
					p.printExprBlob(*a.Predicate)
				}
				p.write("\n")
			}
			p.indent--
			p.writeIndent()
			p.write("}\n")
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	}
	if len(r.Memberships) > 0 {
		p.writeIndent()
		p.write("membership {\n")
		p.indent++
		for _, m := range r.Memberships {
			p.writeIndent()
			p.write("collection ")
			p.str(m.Collection)
			if m.Predicate != nil {
				p.write(" {\n")
				p.indent++
				p.writeIndent()
				p.write("predicate = ")
				p.printExprBlob(*m.Predicate)
				p.write("\n")
				p.indent--
				p.writeIndent()
				p.write("}\n")
			} else {
				p.write("\n")
			}
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	}
	p.indent--
	p.write("}\n")
}
