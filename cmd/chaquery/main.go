// Command chaquery is a small driver over the cha package: it loads a YAML
// description of a class/mixin universe, registers it with a cha.World, and
// either dumps the closed world or answers a single query against it. It
// exists to exercise the engine end to end the way a real compiler driver
// would, not as part of the engine's contract.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/cha-engine/cmd/chaquery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
