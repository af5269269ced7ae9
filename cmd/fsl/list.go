package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/treeops"
)

var listSchemasDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List declarations as JSON",
	Long:  `Print the declarations JSON described in spec.md §6.4: one {type, name, resources?} entry per declaration.`,
	Example: `  # List declarations in the configured schema directory
  fsl list --schemas-dir schemas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(listSchemasDir, cfg.SchemasDir)

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		raw, err := treeops.ListDeclarations(tree)
		if err != nil {
			return cli.FromCoreError("listing declarations", err)
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSchemasDir, "schemas-dir", "", "directory containing .fsl files")
}
