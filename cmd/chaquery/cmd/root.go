package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chaquery",
	Short: "Inspect a closed-world class hierarchy",
	Long: `chaquery loads a YAML scenario describing a class/interface/mixin
universe, closes it against the cha package's class-hierarchy-analysis
engine, and either renders a text dump of the result or answers a single
structural query against it.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
