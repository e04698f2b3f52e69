package cmd

import (
	"fmt"

	"github.com/cwbudde/cha-engine/internal/scenario"
	"github.com/spf13/cobra"
)

var dumpClassName string

var dumpCmd = &cobra.Command{
	Use:   "dump <scenario.yaml>",
	Short: "Render a text dump of the closed world",
	Long: `Loads the scenario file, closes the world, and prints either every
instantiated class (the default) or the classes related to a single class
(with --class).`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVar(&dumpClassName, "class", "", "dump classes related to this class instead of the instantiated tree")
}

func runDump(_ *cobra.Command, args []string) error {
	f, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	w, err := f.Build()
	if err != nil {
		return err
	}

	if dumpClassName == "" {
		fmt.Print(w.Dump(nil))
		return nil
	}
	cls, err := f.ClassByName(w, dumpClassName)
	if err != nil {
		return err
	}
	fmt.Print(w.Dump(cls))
	return nil
}
