package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemakit/fsl/internal/update"
	"github.com/schemakit/fsl/internal/version"
)

var versionCheckUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())

		if !versionCheckUpdate {
			return
		}
		info, err := update.CheckWithCache(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Could not check for updates:", err)
			return
		}
		if info.UpdateAvailable {
			fmt.Printf("A newer version is available: %s (you have %s, supporting: %s)\n",
				info.LatestVersion, info.CurrentVersion, info.InstalledDeclKinds)
		} else {
			fmt.Println("You are running the latest version.")
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheckUpdate, "check-update", false, "check GitHub releases for a newer version")
}
