package rolemerge

import (
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

func TestMerge_CombinesRepeatedRole(t *testing.T) {
	src := `role Reader {
  privileges {
    resource "Product" {
      read
    }
  }
}
role Reader {
  privileges {
    resource "Order" {
      read
    }
  }
}`
	tree := parseTree(t, src)
	defer tree.Dispose()

	if err := Merge(tree); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if tree.Length() != 1 {
		t.Fatalf("Length() = %d, want 1", tree.Length())
	}
	r := tree.Decls[0].Role
	if len(r.Privileges) != 2 {
		t.Fatalf("len(Privileges) = %d, want 2", len(r.Privileges))
	}
}

func TestMerge_UnionsActionsOnSameResource(t *testing.T) {
	src := `role Reader {
  privileges {
    resource "Product" {
      read
    }
  }
}
role Reader {
  privileges {
    resource "Product" {
      write
    }
  }
}`
	tree := parseTree(t, src)
	defer tree.Dispose()

	if err := Merge(tree); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	r := tree.Decls[0].Role
	if len(r.Privileges) != 1 {
		t.Fatalf("len(Privileges) = %d, want 1", len(r.Privileges))
	}
	if len(r.Privileges[0].Actions) != 2 {
		t.Fatalf("len(Actions) = %d, want 2", len(r.Privileges[0].Actions))
	}
}

func TestMerge_ConflictingActionFails(t *testing.T) {
	src := `role Reader {
  privileges {
    resource "Product" {
      read = { true }
    }
  }
}
role Reader {
  privileges {
    resource "Product" {
      read = { false }
    }
  }
}`
	tree := parseTree(t, src)
	defer tree.Dispose()

	err := Merge(tree)
	if err == nil {
		t.Fatal("expected a DuplicateAction error")
	}
	fe, ok := err.(*fsl.Error)
	if !ok || fe.Kind != fsl.ErrDuplicateAction {
		t.Fatalf("error = %v, want ErrDuplicateAction", err)
	}
}

func TestMerge_SameActionSamePredicateIsFine(t *testing.T) {
	src := `role Reader {
  privileges {
    resource "Product" {
      read = { true }
    }
  }
}
role Reader {
  privileges {
    resource "Product" {
      read = { true }
    }
  }
}`
	tree := parseTree(t, src)
	defer tree.Dispose()

	if err := Merge(tree); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
}

func TestMerge_ConflictingMembershipFails(t *testing.T) {
	src := `role Reader {
  membership {
    collection "User" {
      predicate = { .active }
    }
  }
}
role Reader {
  membership {
    collection "User" {
      predicate = { .inactive }
    }
  }
}`
	tree := parseTree(t, src)
	defer tree.Dispose()

	err := Merge(tree)
	if err == nil {
		t.Fatal("expected a DuplicateMembership error")
	}
	fe, ok := err.(*fsl.Error)
	if !ok || fe.Kind != fsl.ErrDuplicateMembership {
		t.Fatalf("error = %v, want ErrDuplicateMembership", err)
	}
}

func TestMerge_NonRoleDeclarationsPreserveOrder(t *testing.T) {
	src := `collection A { id: String }
role R {
  privileges {
    resource "A" {
      read
    }
  }
}
collection B { id: String }`
	tree := parseTree(t, src)
	defer tree.Dispose()

	if err := Merge(tree); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if tree.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", tree.Length())
	}
	if tree.Decls[0].Kind != fsl.KindCollection || tree.Decls[0].Collection.Name.Text != "A" {
		t.Errorf("Decls[0] = %+v, want collection A", tree.Decls[0])
	}
	if tree.Decls[1].Kind != fsl.KindCollection || tree.Decls[1].Collection.Name.Text != "B" {
		t.Errorf("Decls[1] = %+v, want collection B", tree.Decls[1])
	}
	if tree.Decls[2].Kind != fsl.KindRole {
		t.Errorf("Decls[2] = %+v, want role R", tree.Decls[2])
	}
}
