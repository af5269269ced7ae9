package ffi

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParse_ReturnsNonZeroHandle(t *testing.T) {
	h := Parse([]byte(`collection A { id: String }`), "t.fsl")
	if h == 0 {
		t.Fatal("Parse() = 0, want a non-zero handle")
	}
	defer Dispose(h)

	if Length(h) != 1 {
		t.Errorf("Length() = %d, want 1", Length(h))
	}
}

func TestParse_InvalidSourceReturnsZero(t *testing.T) {
	h := Parse([]byte(`collection { }`), "t.fsl")
	if h != 0 {
		Dispose(h)
		t.Fatal("Parse() != 0, want 0 for invalid source")
	}
}

func TestDispose_HandleBecomesInvalid(t *testing.T) {
	h := Parse([]byte(`collection A { id: String }`), "t.fsl")
	Dispose(h)
	if Length(h) != 0 {
		t.Errorf("Length() after Dispose = %d, want 0", Length(h))
	}
}

func TestClone_ProducesIndependentHandle(t *testing.T) {
	h := Parse([]byte(`collection A { id: String }`), "t.fsl")
	defer Dispose(h)

	clone := Clone(h)
	if clone == 0 || clone == h {
		t.Fatalf("Clone() = %d, want a distinct non-zero handle from %d", clone, h)
	}
	defer Dispose(clone)

	RemoveDeclaration(clone, "collection", "A")
	if Length(h) != 1 {
		t.Errorf("original mutated: Length(h) = %d, want 1", Length(h))
	}
	if Length(clone) != 0 {
		t.Errorf("Length(clone) = %d, want 0", Length(clone))
	}
}

func TestMergeTrees_ConsumesBothHandles(t *testing.T) {
	a := Parse([]byte(`collection A { id: String }`), "a.fsl")
	b := Parse([]byte(`collection B { id: String }`), "b.fsl")

	merged := MergeTrees(a, b)
	if merged == 0 {
		t.Fatal("MergeTrees() = 0, want a non-zero handle")
	}
	defer Dispose(merged)

	if Length(merged) != 2 {
		t.Errorf("Length(merged) = %d, want 2", Length(merged))
	}
	if Length(a) != 0 || Length(b) != 0 {
		t.Error("MergeTrees should consume both input handles")
	}
}

func TestLinkFunctions_ReturnsMangledNameJSON(t *testing.T) {
	h := Parse([]byte(`function F(): Number { 1 }`), "t.fsl")
	defer Dispose(h)

	raw := LinkFunctions(h)
	if raw == nil {
		t.Fatal("LinkFunctions() = nil")
	}
	var mangled map[string]string
	if err := json.Unmarshal(raw, &mangled); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if !strings.HasPrefix(mangled["F"], "F_") {
		t.Errorf("mangled[F] = %q, want F_<hash>", mangled["F"])
	}
}

func TestMergeRoles_CombinesDuplicateRole(t *testing.T) {
	h := Parse([]byte(`
role R { privileges { resource "A" { read } } }
role R { privileges { resource "B" { read } } }
`), "t.fsl")
	defer Dispose(h)

	if got := MergeRoles(h); got != h {
		t.Fatalf("MergeRoles() = %d, want %d", got, h)
	}
	if Length(h) != 1 {
		t.Errorf("Length() = %d, want 1", Length(h))
	}
}

func TestFilterByKind_ReturnsOnlyMatching(t *testing.T) {
	h := Parse([]byte(`
collection A { id: String }
function F(): Number { 1 }
`), "t.fsl")
	defer Dispose(h)

	filtered := FilterByKind(h, "function")
	if filtered == 0 {
		t.Fatal("FilterByKind() = 0")
	}
	defer Dispose(filtered)

	if Length(filtered) != 1 {
		t.Errorf("Length() = %d, want 1", Length(filtered))
	}
}

func TestFilterByKind_InvalidKindReturnsZero(t *testing.T) {
	h := Parse([]byte(`collection A { id: String }`), "t.fsl")
	defer Dispose(h)

	if got := FilterByKind(h, "bogus"); got != 0 {
		t.Errorf("FilterByKind(bogus) = %d, want 0", got)
	}
}

func TestRemoveDeclaration_MutatesInPlace(t *testing.T) {
	h := Parse([]byte(`collection A { id: String }`), "t.fsl")
	defer Dispose(h)

	if got := RemoveDeclaration(h, "collection", "A"); got != h {
		t.Errorf("RemoveDeclaration() = %d, want %d", got, h)
	}
	if Length(h) != 0 {
		t.Errorf("Length() = %d, want 0", Length(h))
	}
}

func TestStripRolesResource_RemovesMatchingPrivilege(t *testing.T) {
	h := Parse([]byte(`
role R {
  privileges {
    resource "A" { read }
    resource "B" { read }
  }
}
`), "t.fsl")
	defer Dispose(h)

	StripRolesResource(h, "A")

	raw := ListDeclarations(h)
	var decls []map[string]any
	if err := json.Unmarshal(raw, &decls); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	resources, _ := decls[0]["resources"].([]any)
	if len(resources) != 1 || resources[0] != "B" {
		t.Errorf("resources = %v, want [B]", resources)
	}
}

func TestCanonical_RoundTrips(t *testing.T) {
	h := Parse([]byte(`collection A { id: String }`), "t.fsl")
	defer Dispose(h)

	out := Canonical(h, "", nil, nil)
	if !strings.Contains(string(out), "collection A {") {
		t.Errorf("Canonical() = %q", out)
	}
}

func TestCanonical_InvalidMangledJSONReturnsNil(t *testing.T) {
	h := Parse([]byte(`collection A { id: String }`), "t.fsl")
	defer Dispose(h)

	if out := Canonical(h, "", []byte("not json"), nil); out != nil {
		t.Errorf("Canonical() = %q, want nil for malformed mangled-names JSON", out)
	}
}

func TestTypescriptDefinitions_RendersInterface(t *testing.T) {
	h := Parse([]byte(`collection A { id: String }`), "t.fsl")
	defer Dispose(h)

	out := TypescriptDefinitions(h)
	if !strings.Contains(string(out), "export interface A {") {
		t.Errorf("TypescriptDefinitions() = %q", out)
	}
}

func TestLookup_UnknownHandleIsNil(t *testing.T) {
	if Length(999999) != 0 {
		t.Error("Length() of an unknown handle should be 0")
	}
}
