package main

import (
	"fmt"
	"os"

	"github.com/kagehara/lltab/def"
	"github.com/kagehara/lltab/treegen"
	"github.com/spf13/cobra"
)

func Execute() error {
	return generateCmd.Execute()
}

var generateFlags = struct {
	pkgName *string
}{}

var generateCmd = &cobra.Command{
	Use:           "lltab-go <grammar file>",
	Short:         "Generate tree-node records for Go",
	Long:          `lltab-go generates one Go record per original nonterminal of a grammar.`,
	Example:       `  lltab-go grammar.toml`,
	Args:          cobra.ExactArgs(1),
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	generateFlags.pkgName = generateCmd.Flags().StringP("package", "p", "main", "package name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	d, err := def.Load(args[0])
	if err != nil {
		return err
	}
	b, err := d.Builder()
	if err != nil {
		return err
	}
	// The node records describe the transformed grammar, so the build
	// must succeed first.
	if _, err := b.Build(); err != nil {
		return err
	}

	src, err := treegen.GenNodeTypes(b, *generateFlags.pkgName)
	if err != nil {
		return fmt.Errorf("failed to generate the node records: %w", err)
	}

	filePath := fmt.Sprintf("%v_node.go", d.Name)
	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create an output file: %v", err)
	}
	defer f.Close()

	_, err = f.Write(src)
	if err != nil {
		return fmt.Errorf("failed to write the node-record source: %v", err)
	}
	return nil
}
