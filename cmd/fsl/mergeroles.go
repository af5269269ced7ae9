package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/printer"
	"github.com/schemakit/fsl/internal/rolemerge"
)

var (
	mergeRolesSchemasDir string
	mergeRolesOutput     string
)

var mergeRolesCmd = &cobra.Command{
	Use:   "merge-roles",
	Short: "Merge duplicate role declarations",
	Long: `Combine every role declaration sharing a name into one, failing on
conflicting privilege actions or membership predicates (spec.md §4.4),
then print the merged tree's canonical form.`,
	Example: `  # Merge roles and print the result
  fsl merge-roles --schemas-dir schemas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(mergeRolesSchemasDir, cfg.SchemasDir)
		output := cfg.ResolvedOutput(mergeRolesOutput)

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		if err := rolemerge.Merge(tree); err != nil {
			return cli.FromCoreError("merging roles", err)
		}

		out := printer.Print(tree, printer.Options{})
		if err := writeOutput(output, []byte(out)); err != nil {
			return cli.GeneralError("writing merged schema", err)
		}
		if !quiet && output != "" {
			fmt.Printf("Wrote %s\n", output)
		}
		return nil
	},
}

func init() {
	f := mergeRolesCmd.Flags()
	f.StringVar(&mergeRolesSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.StringVar(&mergeRolesOutput, "output", "", "output file path (default: stdout)")
}
