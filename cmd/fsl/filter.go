package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemakit/fsl"
	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/printer"
	"github.com/schemakit/fsl/internal/treeops"
)

var (
	filterSchemasDir string
	filterOutput     string
	filterKind       string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Print only declarations of one kind",
	Long:  `Build a new tree containing only declarations of the given kind and print its canonical form.`,
	Example: `  # Keep only collection declarations
  fsl filter --kind collection --schemas-dir schemas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(filterSchemasDir, cfg.SchemasDir)
		output := cfg.ResolvedOutput(filterOutput)

		if filterKind == "" {
			return cli.ConfigError("--kind is required", nil)
		}
		kind, err := fsl.ParseDeclKind(filterKind)
		if err != nil {
			return cli.FromCoreError("parsing --kind", err)
		}

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		filtered := treeops.Filter(tree, kind)
		defer filtered.Dispose()

		out := printer.Print(filtered, printer.Options{})
		if err := writeOutput(output, []byte(out)); err != nil {
			return cli.GeneralError("writing filtered schema", err)
		}
		if !quiet && output != "" {
			fmt.Printf("Wrote %s\n", output)
		}
		return nil
	},
}

func init() {
	f := filterCmd.Flags()
	f.StringVar(&filterSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.StringVar(&filterOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&filterKind, "kind", "", "declaration kind: access_provider, collection, function, role")
}
