package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/doctor"
	"github.com/schemakit/fsl/internal/jwtcheck"
)

var (
	doctorSchemasDir string
	doctorVerbose    bool
	doctorToken      string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run schema health checks",
	Long: `Run health checks on a schema directory: duplicate role conflicts,
dangling UDF call references, and access-provider issuer/JWKS presence.

Passing --token additionally checks a sample bearer token's issuer claim
against each declared AccessProvider (spec.md §9).`,
	Example: `  # Run health checks
  fsl doctor --schemas-dir schemas

  # Also check a sample token's issuer claim
  fsl doctor --schemas-dir schemas --token "$BEARER_TOKEN"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(doctorSchemasDir, cfg.Doctor.SchemasDir, cfg.SchemasDir)
		verboseFlag := resolveBool(doctorVerbose, cfg.Doctor.Verbose)
		token := resolveString(doctorToken, cfg.Doctor.Token)

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		if !quiet {
			fmt.Println("fsl doctor - Schema Health Check")
		}

		findings := doctor.CheckAll(tree)
		printFindings(os.Stdout, findings, verboseFlag)

		hasErrors := false
		for _, f := range findings {
			if f.Severity == doctor.SeverityError {
				hasErrors = true
			}
		}

		if token != "" {
			results, err := jwtcheck.CheckAll(tree, token)
			if err != nil {
				return cli.GeneralError("checking token", err)
			}
			for _, r := range results {
				if r.Match {
					fmt.Printf("  [ok]    %s: token issuer matches %q\n", r.Provider, r.WantIssuer)
				} else {
					hasErrors = true
					fmt.Printf("  [error] %s: token issuer %q does not match declared issuer %q\n", r.Provider, r.ClaimedIssuer, r.WantIssuer)
				}
			}
		}

		if hasErrors {
			return cli.GeneralError("health checks failed", nil)
		}
		if !quiet {
			fmt.Println("No issues found.")
		}
		return nil
	},
}

func printFindings(out *os.File, findings []doctor.Finding, verboseFlag bool) {
	if len(findings) == 0 {
		if verboseFlag {
			fmt.Fprintln(out, "  (no findings)")
		}
		return
	}
	for _, f := range findings {
		loc := ""
		if !f.Pos.IsZero() {
			loc = f.Pos.String() + ": "
		}
		fmt.Fprintf(out, "  [%s] %s%s\n", f.Severity, loc, f.Message)
	}
}

func init() {
	f := doctorCmd.Flags()
	f.StringVar(&doctorSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.BoolVar(&doctorVerbose, "verbose", false, "show detailed output")
	f.StringVar(&doctorToken, "token", "", "sample bearer token to check against declared AccessProviders")
}
