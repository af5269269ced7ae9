package doctor

import (
	"testing"

	"github.com/schemakit/fsl/internal/parser"
)

func TestCheckRoleConflicts_ReportsDuplicateAction(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `
role R {
  privileges {
    resource "A" {
      read = { true }
    }
  }
}
role R {
  privileges {
    resource "A" {
      read = { false }
    }
  }
}
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	findings := CheckRoleConflicts(tree)
	if len(findings) != 1 {
		t.Fatalf("len(findings) = %d, want 1", len(findings))
	}
	if findings[0].Severity != SeverityError {
		t.Errorf("Severity = %v, want Error", findings[0].Severity)
	}
	if tree.Length() != 2 {
		t.Errorf("original tree mutated: Length() = %d, want 2", tree.Length())
	}
}

func TestCheckRoleConflicts_NoConflictIsClean(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `role R { privileges { resource "A" { read } } }`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	if findings := CheckRoleConflicts(tree); len(findings) != 0 {
		t.Errorf("findings = %v, want none", findings)
	}
}

func TestCheckDanglingFunctionCalls_FlagsUndeclaredCall(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `function F(): Number { Missing() + 1 }`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	findings := CheckDanglingFunctionCalls(tree)
	if len(findings) != 1 {
		t.Fatalf("len(findings) = %d, want 1", len(findings))
	}
}

func TestCheckDanglingFunctionCalls_DeclaredCallIsClean(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `
function Helper(): Number { 1 }
function F(): Number { Helper() + 1 }
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	if findings := CheckDanglingFunctionCalls(tree); len(findings) != 0 {
		t.Errorf("findings = %v, want none", findings)
	}
}

func TestCheckDanglingFunctionCalls_IgnoresNonCallIdentifiers(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `function F(x: Number): Number { x + Missing }`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	if findings := CheckDanglingFunctionCalls(tree); len(findings) != 0 {
		t.Errorf("findings = %v, want none (Missing is not called)", findings)
	}
}

func TestCheckAccessProviders_FlagsMissingIssuerAndJWKS(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `access provider AP { roles = [Reader] }`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	findings := CheckAccessProviders(tree)
	if len(findings) != 2 {
		t.Fatalf("len(findings) = %d, want 2", len(findings))
	}
}

func TestCheckAccessProviders_CompleteProviderIsClean(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `
access provider AP {
  issuer = "https://issuer.example"
  jwks_uri = "https://issuer.example/.well-known/jwks.json"
  roles = [Reader]
}
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	if findings := CheckAccessProviders(tree); len(findings) != 0 {
		t.Errorf("findings = %v, want none", findings)
	}
}
