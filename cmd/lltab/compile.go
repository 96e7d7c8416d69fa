package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kagehara/lltab/def"
	derr "github.com/kagehara/lltab/error"
	"github.com/kagehara/lltab/tabfile"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <grammar file>",
		Short:   "Compile a grammar definition into a parse table",
		Example: `  lltab compile grammar.toml -o grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	defPath := args[0]
	defer func() {
		if retErr == nil {
			return
		}
		var de *derr.DefError
		if errors.As(retErr, &de) && de.Path == "" {
			de.Path = defPath
		}
	}()

	d, err := def.Load(defPath)
	if err != nil {
		return err
	}
	b, err := d.Builder()
	if err != nil {
		return err
	}
	tab, err := b.Build()
	if err != nil {
		return err
	}
	ct, err := tabfile.FromParseTable(d.Name, tab)
	if err != nil {
		return err
	}

	w := os.Stdout
	if *compileFlags.output != "" {
		f, err := os.OpenFile(*compileFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("failed to create an output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return tabfile.Write(w, ct)
}
