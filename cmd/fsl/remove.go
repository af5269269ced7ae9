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
	removeSchemasDir string
	removeOutput     string
	removeKind       string
	removeName       string
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove one declaration by kind and name",
	Example: `  # Remove the "Legacy" collection
  fsl remove --kind collection --name Legacy --schemas-dir schemas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(removeSchemasDir, cfg.SchemasDir)
		output := cfg.ResolvedOutput(removeOutput)

		if removeKind == "" || removeName == "" {
			return cli.ConfigError("--kind and --name are required", nil)
		}
		kind, err := fsl.ParseDeclKind(removeKind)
		if err != nil {
			return cli.FromCoreError("parsing --kind", err)
		}

		tree, err := loadSchemaDir(cmd.Context(), dir)
		if err != nil {
			return err
		}
		defer tree.Dispose()

		if removed := treeops.Remove(tree, kind, removeName); !removed && !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: no %s named %q found\n", removeKind, removeName)
		}

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
	f := removeCmd.Flags()
	f.StringVar(&removeSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.StringVar(&removeOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&removeKind, "kind", "", "declaration kind: access_provider, collection, function, role")
	f.StringVar(&removeName, "name", "", "declaration name to remove")
}
