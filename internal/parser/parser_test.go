package parser

import (
	"testing"

	"github.com/schemakit/fsl"
)

func TestParse_AccessProvider(t *testing.T) {
	src := `access provider Auth0 {
  issuer = "https://example.auth0.com/"
  jwks_uri = "https://example.auth0.com/.well-known/jwks.json"
  roles = [admin, viewer]
}`
	tree, err := Parse("t.fsl", src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	if tree.Length() != 1 {
		t.Fatalf("Length() = %d, want 1", tree.Length())
	}
	d := tree.Decls[0]
	if d.Kind != fsl.KindAccessProvider {
		t.Fatalf("Kind = %v, want KindAccessProvider", d.Kind)
	}
	ap := d.AccessProvider
	if ap.Name.Text != "Auth0" {
		t.Errorf("Name = %q, want Auth0", ap.Name.Text)
	}
	if ap.Issuer == nil || ap.Issuer.Text != "https://example.auth0.com/" {
		t.Errorf("Issuer = %v, want the issuer URL", ap.Issuer)
	}
	if len(ap.Roles) != 2 || ap.Roles[0].Text != "admin" || ap.Roles[1].Text != "viewer" {
		t.Errorf("Roles = %v, want [admin viewer]", ap.Roles)
	}
}

func TestParse_Collection(t *testing.T) {
	src := `collection Product {
  name: String
  price: Number?
  compute display_name: String = { .name }
  unique [name]
  check { .price >= 0 }
  index byName {
    terms = [name]
    values = [price]
    unique = true
  }
  history_days = 30
  migrations = { add .discontinued = false }
}`
	tree, err := Parse("t.fsl", src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	if tree.Length() != 1 {
		t.Fatalf("Length() = %d, want 1", tree.Length())
	}
	c := tree.Decls[0].Collection
	if c.Name.Text != "Product" {
		t.Fatalf("Name = %q, want Product", c.Name.Text)
	}
	if len(c.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(c.Fields))
	}
	if c.Fields[1].Type.Tag() != fsl.FQLOptional {
		t.Errorf("price field type = %v, want FQLOptional", c.Fields[1].Type.Tag())
	}
	if len(c.ComputedFields) != 1 || c.ComputedFields[0].Expr.Text != " .name " {
		t.Errorf("ComputedFields = %+v", c.ComputedFields)
	}
	if len(c.Constraints) != 2 {
		t.Fatalf("len(Constraints) = %d, want 2", len(c.Constraints))
	}
	if len(c.Indexes) != 1 || !c.Indexes[0].Unique {
		t.Fatalf("Indexes = %+v", c.Indexes)
	}
	if c.HistoryDays == nil || *c.HistoryDays != 30 {
		t.Errorf("HistoryDays = %v, want 30", c.HistoryDays)
	}
	if c.Migrations == nil {
		t.Fatal("Migrations = nil, want set")
	}
}

func TestParse_FunctionWithTypes(t *testing.T) {
	src := `function Sum(a: Number, b: Number): Number {
  a + b
}`
	tree, err := Parse("t.fsl", src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	f := tree.Decls[0].Function
	if f.Name.Text != "Sum" {
		t.Fatalf("Name = %q, want Sum", f.Name.Text)
	}
	if len(f.Params) != 2 {
		t.Fatalf("len(Params) = %d, want 2", len(f.Params))
	}
	if f.Return.Tag() != fsl.FQLNamed || f.Return.Named != "Number" {
		t.Errorf("Return = %+v, want named(Number)", f.Return)
	}
}

func TestParse_Role(t *testing.T) {
	src := `role Reader {
  privileges {
    resource "Product" {
      read = { true }
      write
    }
  }
  membership {
    collection "User" {
      predicate = { .active }
    }
  }
}`
	tree, err := Parse("t.fsl", src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	r := tree.Decls[0].Role
	if r.Name.Text != "Reader" {
		t.Fatalf("Name = %q, want Reader", r.Name.Text)
	}
	if len(r.Privileges) != 1 || r.Privileges[0].Resource.Text != "Product" {
		t.Fatalf("Privileges = %+v", r.Privileges)
	}
	if len(r.Privileges[0].Actions) != 2 {
		t.Fatalf("len(Actions) = %d, want 2", len(r.Privileges[0].Actions))
	}
	if r.Privileges[0].Actions[0].Predicate == nil {
		t.Error("read action predicate = nil, want set")
	}
	if r.Privileges[0].Actions[1].Predicate != nil {
		t.Error("write action predicate = non-nil, want nil")
	}
	if len(r.Memberships) != 1 || r.Memberships[0].Collection.Text != "User" {
		t.Fatalf("Memberships = %+v", r.Memberships)
	}
}

func TestParse_TypeGrammar(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		want fsl.FQLTypeKind
	}{
		{"named", "String", fsl.FQLNamed},
		{"template", "Ref<Product>", fsl.FQLTemplate},
		{"union", "String | Number", fsl.FQLUnion},
		{"optional", "String?", fsl.FQLOptional},
		{"tuple", "[String, Number]", fsl.FQLTuple},
		{"object", `{ name: String }`, fsl.FQLObject},
		{"function", "(String) => Number", fsl.FQLFunction},
		{"isolated", "*String", fsl.FQLIsolated},
		{"string_literal", `"active"`, fsl.FQLStringLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "collection C { f: " + tt.typ + " }"
			tree, err := Parse("t.fsl", src)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", src, err)
			}
			defer tree.Dispose()
			got := tree.Decls[0].Collection.Fields[0].Type.Tag()
			if got != tt.want {
				t.Errorf("type tag = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_UnionBindsLooserThanOptional(t *testing.T) {
	// "String? | Number" should be union(optional(String), Number), not
	// optional(union(String, Number)).
	src := "collection C { f: String? | Number }"
	tree, err := Parse("t.fsl", src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()
	typ := tree.Decls[0].Collection.Fields[0].Type
	if typ.Tag() != fsl.FQLUnion {
		t.Fatalf("tag = %v, want FQLUnion", typ.Tag())
	}
	if typ.UnionLHS.Tag() != fsl.FQLOptional {
		t.Errorf("UnionLHS tag = %v, want FQLOptional", typ.UnionLHS.Tag())
	}
}

func TestParse_MultipleDeclarationsWithComments(t *testing.T) {
	src := `// header comment
collection A { id: String }

// between
collection B { id: String }
`
	tree, err := Parse("t.fsl", src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()
	if tree.Length() != 2 {
		t.Fatalf("Length() = %d, want 2", tree.Length())
	}
	if len(tree.Extras) == 0 {
		t.Error("expected extras to capture the comments")
	}
}

func TestParse_ErrorOnUnknownTopLevelKeyword(t *testing.T) {
	_, err := Parse("t.fsl", "widget Foo {}")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *fsl.Error
	if !asFSLError(err, &perr) {
		t.Fatalf("error %v is not *fsl.Error", err)
	}
	if perr.Kind != fsl.ErrParse {
		t.Errorf("Kind = %v, want ErrParse", perr.Kind)
	}
}

func asFSLError(err error, target **fsl.Error) bool {
	if e, ok := err.(*fsl.Error); ok {
		*target = e
		return true
	}
	return false
}

func TestWalkIdentifiers(t *testing.T) {
	refs := WalkIdentifiers(`Discount(.price, "sale", taxRate) + other.field`)
	var names []string
	for _, r := range refs {
		names = append(names, r.Name)
	}
	want := []string{"Discount", "taxRate", "other"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("names[%d] = %q, want %q", i, names[i], w)
		}
	}
}

func TestRewriteBlob(t *testing.T) {
	blob := fsl.ExprBlob{Text: "Discount(x) + Discount(y)"}
	out := RewriteBlob(blob, "Discount", "Discount_abc123")
	want := "Discount_abc123(x) + Discount_abc123(y)"
	if out.Text != want {
		t.Errorf("RewriteBlob() = %q, want %q", out.Text, want)
	}
}
