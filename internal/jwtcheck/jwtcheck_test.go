package jwtcheck

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/parser"
)

func signToken(t *testing.T, issuer string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: issuer})
	signed, err := token.SignedString([]byte("does-not-need-to-be-valid-for-unverified-parsing"))
	if err != nil {
		t.Fatalf("SignedString() error: %v", err)
	}
	return signed
}

func TestCheckToken_MatchingIssuer(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `access provider AP { issuer = "https://issuer.example" }`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	token := signToken(t, "https://issuer.example")
	result, err := CheckToken(tree.Decls[0].AccessProvider, token)
	if err != nil {
		t.Fatalf("CheckToken() error: %v", err)
	}
	if !result.Match {
		t.Errorf("Match = false, want true (claimed=%q want=%q)", result.ClaimedIssuer, result.WantIssuer)
	}
}

func TestCheckToken_MismatchedIssuer(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `access provider AP { issuer = "https://issuer.example" }`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	token := signToken(t, "https://attacker.example")
	result, err := CheckToken(tree.Decls[0].AccessProvider, token)
	if err != nil {
		t.Fatalf("CheckToken() error: %v", err)
	}
	if result.Match {
		t.Error("Match = true, want false for a mismatched issuer")
	}
}

func TestCheckToken_MalformedTokenErrors(t *testing.T) {
	ap := &fsl.AccessProviderDecl{}
	if _, err := CheckToken(ap, "not-a-jwt"); err == nil {
		t.Fatal("expected an error parsing a malformed token")
	}
}

func TestCheckAll_CollectsEveryProvider(t *testing.T) {
	tree, err := parser.Parse("t.fsl", `
access provider A { issuer = "https://a.example" }
access provider B { issuer = "https://b.example" }
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	defer tree.Dispose()

	token := signToken(t, "https://a.example")
	results, err := CheckAll(tree, token)
	if err != nil {
		t.Fatalf("CheckAll() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if !results[0].Match || results[1].Match {
		t.Errorf("results = %+v, want only A to match", results)
	}
}
