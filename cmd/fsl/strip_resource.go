package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/printer"
	"github.com/schemakit/fsl/internal/treeops"
)

var (
	stripResourceSchemasDir string
	stripResourceOutput     string
	stripResourceName       string
)

var stripResourceCmd = &cobra.Command{
	Use:   "strip-resource",
	Short: "Remove a resource's privileges from every role",
	Long:  `Remove every privilege entry naming the given resource from every role declaration.`,
	Example: `  # Strip the "Audit" resource from all roles
  fsl strip-resource --name Audit --schemas-dir schemas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(stripResourceSchemasDir, cfg.SchemasDir)
		output := cfg.ResolvedOutput(stripResourceOutput)

		if stripResourceName == "" {
			return cli.ConfigError("--name is required", nil)
		}

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		treeops.StripRolesResource(tree, stripResourceName)

		out := printer.Print(tree, printer.Options{})
		if err := writeOutput(output, []byte(out)); err != nil {
			return cli.GeneralError("writing schema", err)
		}
		if !quiet && output != "" {
			fmt.Printf("Wrote %s\n", output)
		}
		return nil
	},
}

func init() {
	f := stripResourceCmd.Flags()
	f.StringVar(&stripResourceSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.StringVar(&stripResourceOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&stripResourceName, "name", "", "resource name to strip from every role")
}
