package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/treeops"
)

var parseSchemasDir string

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a schema directory and report declaration counts",
	Long:  `Parse every .fsl file in a directory and report the merged declaration count.`,
	Example: `  # Parse the configured schema directory
  fsl parse

  # Parse a specific directory
  fsl parse --schemas-dir internal/authz/schemas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(parseSchemasDir, cfg.SchemasDir)

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		if !quiet {
			decls, err := treeops.ListDeclarations(tree)
			if err != nil {
				return cli.FromCoreError("listing declarations", err)
			}
			fmt.Printf("Schema is valid. %d declarations parsed from %s.\n", tree.Length(), dir)
			if verbose > 0 {
				fmt.Println(string(decls))
			}
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseSchemasDir, "schemas-dir", "", "directory containing .fsl files")
}
