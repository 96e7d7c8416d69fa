package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lltab",
	Short: "Generate an LL(1) predictive parse table from a grammar",
	Long: `lltab turns a declarative grammar definition into an LL(1) parse table:
it eliminates direct left recursion, factors FIRST/FIRST collisions,
computes FIRST/FOLLOW/PREDICT sets, and emits the table as a JSON file
a predictive parser can drive.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
