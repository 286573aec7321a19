package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/attendo-cloud/scangate/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scangate",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("scangate %s (%s, built %s)\n", version.Version, version.Commit, version.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
