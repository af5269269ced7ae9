// Package jwtcheck implements `fsl doctor --token`'s access-provider check:
// does a sample bearer token's issuer claim match the declared
// AccessProvider's issuer. It parses the token's claims without verifying
// the signature — the declared JWKS URI names where the signing keys
// would come from, but fetching and trusting them is a host concern this
// repository doesn't take on (spec.md §9 "Access-provider verification").
package jwtcheck

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schemakit/fsl"
)

// Result is the outcome of checking one sample token against one
// AccessProviderDecl.
type Result struct {
	Provider      string
	ClaimedIssuer string
	WantIssuer    string
	Match         bool
}

// CheckToken parses tokenString's claims (unverified) and compares its
// `iss` claim against ap.Issuer.
func CheckToken(ap *fsl.AccessProviderDecl, tokenString string) (*Result, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	want := ""
	if ap.Issuer != nil {
		want = ap.Issuer.Text
	}
	return &Result{
		Provider:      ap.Name.Text,
		ClaimedIssuer: claims.Issuer,
		WantIssuer:    want,
		Match:         want != "" && claims.Issuer == want,
	}, nil
}

// CheckAll runs CheckToken against every AccessProvider declaration in
// tree, skipping none — a doctor run reports on every provider it finds,
// not just the first.
func CheckAll(tree *fsl.SchemaTree, tokenString string) ([]*Result, error) {
	var results []*Result
	for _, d := range tree.Decls {
		if d.Kind != fsl.KindAccessProvider {
			continue
		}
		r, err := CheckToken(d.AccessProvider, tokenString)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
