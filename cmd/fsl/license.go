package main

import (
	"github.com/spf13/cobra"

	"github.com/schemakit/fsl/internal/licenses"
)

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Print license and third-party notices",
	RunE: func(cmd *cobra.Command, args []string) error {
		licenses.Fprint(cmd.OutOrStdout())
		return nil
	},
}
