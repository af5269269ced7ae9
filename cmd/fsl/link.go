package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/linker"
)

var (
	linkSchemasDir string
	linkOutput     string
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link UDF call graph and print mangled function names",
	Long: `Link every function declaration's call graph, detecting cycles, and
print the resulting {original: mangled} name map as JSON.`,
	Example: `  # Link the configured schema directory
  fsl link

  # Write the mangled-name map to a file
  fsl link --schemas-dir schemas --output names.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(linkSchemasDir, cfg.SchemasDir)
		output := cfg.ResolvedOutput(linkOutput)

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		mangled, err := linker.Link(tree)
		if err != nil {
			return cli.FromCoreError("linking functions", err)
		}

		raw, err := json.MarshalIndent(mangled, "", "  ")
		if err != nil {
			return cli.GeneralError("marshaling mangled-name map", err)
		}

		if err := writeOutput(output, raw); err != nil {
			return cli.GeneralError("writing mangled-name map", err)
		}
		if !quiet && output != "" {
			fmt.Printf("Wrote %s\n", output)
		}
		return nil
	},
}

func init() {
	f := linkCmd.Flags()
	f.StringVar(&linkSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.StringVar(&linkOutput, "output", "", "output file path (default: stdout)")
}
