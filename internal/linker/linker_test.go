package linker

import (
	"strings"
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

func TestLink_RenamesLeafFunction(t *testing.T) {
	tree := parseTree(t, `function F(): Number { 1 }`)
	defer tree.Dispose()

	mangled, err := Link(tree)
	if err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	newName, ok := mangled["F"]
	if !ok || !strings.HasPrefix(newName, "F_") {
		t.Fatalf("mangled[F] = %q, ok=%v, want F_<hash>", newName, ok)
	}
	if tree.Decls[0].Function.Name.Text != newName {
		t.Errorf("function name = %q, want %q", tree.Decls[0].Function.Name.Text, newName)
	}
}

func TestLink_RewritesCallerReference(t *testing.T) {
	tree := parseTree(t, `
function Leaf(): Number { 1 }
function Caller(): Number { Leaf() + 1 }
`)
	defer tree.Dispose()

	mangled, err := Link(tree)
	if err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	caller := tree.Decls[1].Function
	if !strings.Contains(caller.Body.Text, mangled["Leaf"]) {
		t.Errorf("Caller body = %q, want it to reference %q", caller.Body.Text, mangled["Leaf"])
	}
}

func TestLink_IsDeterministicAcrossRuns(t *testing.T) {
	src := `
function A(): Number { B() }
function B(): Number { 2 }
`
	tree1 := parseTree(t, src)
	defer tree1.Dispose()
	m1, err := Link(tree1)
	if err != nil {
		t.Fatalf("Link() error: %v", err)
	}

	tree2 := parseTree(t, src)
	defer tree2.Dispose()
	m2, err := Link(tree2)
	if err != nil {
		t.Fatalf("Link() error: %v", err)
	}

	if m1["A"] != m2["A"] || m1["B"] != m2["B"] {
		t.Errorf("linking is not deterministic: %v vs %v", m1, m2)
	}
}

func TestLink_CyclicFunctionsGetSharedComponentHash(t *testing.T) {
	tree := parseTree(t, `
function Even(n: Number): Number { Odd(n) }
function Odd(n: Number): Number { Even(n) }
`)
	defer tree.Dispose()

	mangled, err := Link(tree)
	if err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	evenHash := strings.TrimPrefix(mangled["Even"], "Even_")
	oddHash := strings.TrimPrefix(mangled["Odd"], "Odd_")
	if evenHash != oddHash {
		t.Errorf("cycle members should share a hash: Even=%s Odd=%s", evenHash, oddHash)
	}
}

func TestLink_RewritesRolePrivilegeResourceAndPredicate(t *testing.T) {
	tree := parseTree(t, `
function IsActive(): Boolean { true }
role R {
  privileges {
    resource "IsActive" {
      call = { IsActive() }
    }
  }
}
`)
	defer tree.Dispose()

	mangled, err := Link(tree)
	if err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	role := tree.Decls[1].Role
	if role.Privileges[0].Resource.Text != mangled["IsActive"] {
		t.Errorf("resource = %q, want %q", role.Privileges[0].Resource.Text, mangled["IsActive"])
	}
	pred := role.Privileges[0].Actions[0].Predicate
	if pred == nil || !strings.Contains(pred.Text, mangled["IsActive"]) {
		t.Errorf("predicate = %v, want it to reference %q", pred, mangled["IsActive"])
	}
}

func TestDetectCycles_MergesSharedNodeCandidates(t *testing.T) {
	fns := map[string]*fnEntry{
		"a": {deps: map[string]bool{"b": true}},
		"b": {deps: map[string]bool{"c": true}},
		"c": {deps: map[string]bool{"a": true}},
	}
	unlinked := map[string]bool{"a": true, "b": true, "c": true}
	cycles := detectCycles(fns, unlinked)
	if len(cycles) != 1 {
		t.Fatalf("len(cycles) = %d, want 1", len(cycles))
	}
	if len(cycles[0]) != 3 {
		t.Fatalf("cycle = %v, want 3 members", cycles[0])
	}
}
