// Package doctor implements `fsl doctor`'s schema health checks: duplicate
// role conflicts, dangling UDF references, and access-provider issuer/JWKS
// URI presence. The checks are walks over an already-parsed tree and
// perform no I/O.
package doctor

import (
	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/parser"
	"github.com/schemakit/fsl/internal/rolemerge"
)

// Severity tags how serious a Finding is.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one schema health issue surfaced by a Check.
type Finding struct {
	Severity Severity
	Message  string
	Pos      fsl.Position // zero when not tied to a single source location
}

// CheckRoleConflicts runs the role merger against a throwaway clone of tree
// and reports any DuplicateAction/DuplicateMembership conflict it finds,
// without mutating the tree the caller is inspecting.
func CheckRoleConflicts(tree *fsl.SchemaTree) []Finding {
	clone := tree.Clone(nil)
	defer clone.Dispose()

	if err := rolemerge.Merge(clone); err != nil {
		return []Finding{{Severity: SeverityError, Message: err.Error()}}
	}
	return nil
}

// CheckDanglingFunctionCalls scans every expression blob in the tree (UDF
// bodies, computed fields, constraints, migrations, role predicates) for
// call-syntax references (`name(`) to a function name that isn't declared
// anywhere in the tree. This is a heuristic: FQL builtin functions are
// indistinguishable from undeclared UDFs by name alone, so false positives
// are possible for expressions that call builtins.
func CheckDanglingFunctionCalls(tree *fsl.SchemaTree) []Finding {
	declared := map[string]bool{}
	for _, d := range tree.Decls {
		if d.Kind == fsl.KindFunction {
			declared[d.Function.Name.Text] = true
		}
	}

	var findings []Finding
	for _, d := range tree.Decls {
		for _, blob := range blobsOf(d) {
			for _, ref := range parser.WalkIdentifiers(blob.Text) {
				if !isCallSite(blob.Text, ref.End) {
					continue
				}
				if declared[ref.Name] {
					continue
				}
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					Message:  "call to undeclared function " + ref.Name,
					Pos:      blob.Pos,
				})
			}
		}
	}
	return findings
}

func isCallSite(text string, end int) bool {
	i := end
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i < len(text) && text[i] == '('
}

// blobsOf collects every ExprBlob a declaration carries.
func blobsOf(d *fsl.Declaration) []fsl.ExprBlob {
	var out []fsl.ExprBlob
	switch d.Kind {
	case fsl.KindFunction:
		out = append(out, d.Function.Body)
	case fsl.KindCollection:
		for _, cf := range d.Collection.ComputedFields {
			out = append(out, cf.Expr)
		}
		for _, c := range d.Collection.Constraints {
			if c.Predicate != nil {
				out = append(out, *c.Predicate)
			}
		}
		if d.Collection.Migrations != nil {
			out = append(out, *d.Collection.Migrations)
		}
	case fsl.KindRole:
		for _, p := range d.Role.Privileges {
			for _, a := range p.Actions {
				if a.Predicate != nil {
					out = append(out, *a.Predicate)
				}
			}
		}
		for _, m := range d.Role.Memberships {
			if m.Predicate != nil {
				out = append(out, *m.Predicate)
			}
		}
	}
	return out
}

// CheckAccessProviders reports access providers missing an issuer or a JWKS
// URI. It does not contact the JWKS URI; internal/jwtcheck separately
// compares a sample token's iss claim with the declared issuer.
func CheckAccessProviders(tree *fsl.SchemaTree) []Finding {
	var findings []Finding
	for _, d := range tree.Decls {
		if d.Kind != fsl.KindAccessProvider {
			continue
		}
		ap := d.AccessProvider
		if ap.Issuer == nil || ap.Issuer.Text == "" {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message:  "access provider " + ap.Name.Text + " has no issuer",
			})
		}
		if ap.JWKSURI == nil || ap.JWKSURI.Text == "" {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message:  "access provider " + ap.Name.Text + " has no jwks_uri",
			})
		}
	}
	return findings
}

// CheckAll runs every check and concatenates their findings, in the order
// role conflicts, dangling calls, access providers.
func CheckAll(tree *fsl.SchemaTree) []Finding {
	var findings []Finding
	findings = append(findings, CheckRoleConflicts(tree)...)
	findings = append(findings, CheckDanglingFunctionCalls(tree)...)
	findings = append(findings, CheckAccessProviders(tree)...)
	return findings
}
