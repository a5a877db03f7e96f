package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oo",
	Short: "Drive the oofront compiler front-end over a source tree",
	Long: `oo drives the front-end's ordered phases:
parse, conditional-compilation filter, bind, kind-check, coarse-type.

It is a thin diagnostic entry point, not a compiler driver — it exists to
exercise the front-end end-to-end and print the first diagnostic, the way
the embedder is expected to.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command, printing any returned error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
