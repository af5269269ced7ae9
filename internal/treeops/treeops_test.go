package treeops

import (
	"encoding/json"
	"testing"

	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/parser"
)

func parseTree(t *testing.T, src string) *fsl.SchemaTree {
	t.Helper()
	tree, err := parser.Parse("t.fsl", src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return tree
}

func TestFilter_OnlyMatchingKind(t *testing.T) {
	tree := parseTree(t, `
collection A { id: String }
function F(): Number { 1 }
collection B { id: String }
`)
	defer tree.Dispose()

	filtered := Filter(tree, fsl.KindCollection)
	defer filtered.Dispose()

	if filtered.Length() != 2 {
		t.Fatalf("Length() = %d, want 2", filtered.Length())
	}
	if tree.Length() != 3 {
		t.Errorf("source tree mutated: Length() = %d, want 3", tree.Length())
	}
}

func TestRemove_DeletesAndCompacts(t *testing.T) {
	tree := parseTree(t, `
collection A { id: String }
collection B { id: String }
collection C { id: String }
`)
	defer tree.Dispose()

	if !Remove(tree, fsl.KindCollection, "B") {
		t.Fatal("Remove() = false, want true")
	}
	if tree.Length() != 2 {
		t.Fatalf("Length() = %d, want 2", tree.Length())
	}
	if tree.Decls[0].Name() != "A" || tree.Decls[1].Name() != "C" {
		t.Errorf("remaining = [%s %s], want [A C]", tree.Decls[0].Name(), tree.Decls[1].Name())
	}
}

func TestRemove_NotFound(t *testing.T) {
	tree := parseTree(t, `collection A { id: String }`)
	defer tree.Dispose()
	if Remove(tree, fsl.KindCollection, "Missing") {
		t.Fatal("Remove() = true, want false")
	}
}

func TestStripRolesResource(t *testing.T) {
	tree := parseTree(t, `
role R {
  privileges {
    resource "A" {
      read
    }
    resource "B" {
      read
    }
  }
}
`)
	defer tree.Dispose()

	StripRolesResource(tree, "A")
	r := tree.Decls[0].Role
	if len(r.Privileges) != 1 || r.Privileges[0].Resource.Text != "B" {
		t.Errorf("Privileges = %+v, want only B", r.Privileges)
	}
}

func TestSort_ByKindThenName(t *testing.T) {
	tree := parseTree(t, `
role Zebra {
  privileges {
  }
}
collection Banana { id: String }
collection Apple { id: String }
`)
	defer tree.Dispose()

	Sort(tree)
	names := []string{tree.Decls[0].Name(), tree.Decls[1].Name(), tree.Decls[2].Name()}
	want := []string{"Apple", "Banana", "Zebra"}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("Decls[%d] = %s, want %s", i, names[i], w)
		}
	}
}

func TestListDeclarations(t *testing.T) {
	tree := parseTree(t, `
collection A { id: String }
role R {
  privileges {
    resource "A" {
      read
    }
  }
}
`)
	defer tree.Dispose()

	raw, err := ListDeclarations(tree)
	if err != nil {
		t.Fatalf("ListDeclarations() error: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0]["type"] != "collection" || got[0]["name"] != "A" {
		t.Errorf("got[0] = %v", got[0])
	}
	if got[1]["type"] != "role" {
		t.Errorf("got[1] = %v", got[1])
	}
	resources, ok := got[1]["resources"].([]any)
	if !ok || len(resources) != 1 || resources[0] != "A" {
		t.Errorf("got[1].resources = %v, want [A]", got[1]["resources"])
	}
}
