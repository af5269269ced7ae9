package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/tsgen"
)

var (
	typescriptSchemasDir string
	typescriptOutput     string
)

var typescriptCmd = &cobra.Command{
	Use:   "typescript",
	Short: "Generate TypeScript declarations from collections",
	Long:  `Emit a .d.ts text blob mapping every collection declaration to a TypeScript interface or type alias (spec.md §11).`,
	Example: `  # Print to stdout
  fsl typescript --schemas-dir schemas

  # Write to a file
  fsl typescript --schemas-dir schemas --output schema.d.ts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(typescriptSchemasDir, cfg.Typescript.SchemasDir, cfg.SchemasDir)
		output := resolveString(typescriptOutput, cfg.Typescript.Output, cfg.Output)

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		out := tsgen.Generate(tree)
		if err := writeOutput(output, []byte(out)); err != nil {
			return cli.GeneralError("writing TypeScript declarations", err)
		}
		if !quiet && output != "" {
			fmt.Printf("Wrote %s\n", output)
		}
		return nil
	},
}

func init() {
	f := typescriptCmd.Flags()
	f.StringVar(&typescriptSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.StringVar(&typescriptOutput, "output", "", "output file path (default: stdout)")
}
