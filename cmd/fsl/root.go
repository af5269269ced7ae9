package main

import (
	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "fsl",
	Short: "FSL/FQL schema toolchain",
	Long: `fsl - FSL/FQL schema toolchain

fsl parses, links, role-merges and canonically prints FaunaDB-style schema
documents, and emits TypeScript declarations and a JSON declaration list
for host tooling.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version/license commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" || cmd.Name() == "license" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupSchema  = "schema"
	groupClient  = "client"
	groupUtility = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover fsl.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Define command groups
	rootCmd.AddGroup(
		&cobra.Group{ID: groupSchema, Title: "Schema:"},
		&cobra.Group{ID: groupClient, Title: "Client:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	// Schema commands
	parseCmd.GroupID = groupSchema
	canonicalCmd.GroupID = groupSchema
	linkCmd.GroupID = groupSchema
	mergeRolesCmd.GroupID = groupSchema
	filterCmd.GroupID = groupSchema
	removeCmd.GroupID = groupSchema
	stripResourceCmd.GroupID = groupSchema
	listCmd.GroupID = groupSchema
	doctorCmd.GroupID = groupSchema
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(canonicalCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(mergeRolesCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(stripResourceCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doctorCmd)

	// Client commands
	typescriptCmd.GroupID = groupClient
	rootCmd.AddCommand(typescriptCmd)

	// Utility commands
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	licenseCmd.GroupID = groupUtility
	serveCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(licenseCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveBool returns true if any of the provided values is true.
// Used for boolean flags where any true value should win.
func resolveBool(values ...bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
