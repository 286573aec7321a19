package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scangate",
	Short: "Attendance scan gateway for Notion databases",
	Long: `scangate forwards scanned badge identifiers to a Notion database:
it resolves the page titled with the scanned id, marks its attendance
checkbox, and returns the person's fields.`,
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
