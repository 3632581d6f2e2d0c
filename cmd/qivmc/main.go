// Command qivmc is the build-and-serve entrypoint for the quantum IR
// lowering pipeline: a cobra CLI replacing the teacher's flag-library-free
// cmd/cli/main.go, grounded on original_source/cli/src/main.rs's Args
// struct and compile flow.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "qivmc",
	Short:   "Quantum IR lowering pipeline compiler and service",
	Version: "0.1.0",
}

func main() {
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newServeCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
