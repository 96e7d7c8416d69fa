package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kagehara/lltab/driver"
	"github.com/kagehara/lltab/grammar"
	"github.com/kagehara/lltab/tabfile"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <table file>",
		Short: "Parse a stream of terminal names against a compiled table",
		Long: `parse reads whitespace-separated terminal names and runs the LL(1)
driver against them. The input is consumed as pre-tokenized text; lltab
performs no lexing.`,
		Example: `  echo one plus one | lltab parse grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open the table file %v: %w", args[0], err)
	}
	defer f.Close()
	ct, err := tabfile.Read(f)
	if err != nil {
		return fmt.Errorf("cannot read the table file %v: %w", args[0], err)
	}
	tab, err := ct.ParseTable()
	if err != nil {
		return err
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		s, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %v: %w", *parseFlags.source, err)
		}
		defer s.Close()
		src = s
	}

	byName := map[string]grammar.Token{}
	for _, t := range tab.Terminals() {
		byName[tab.TokenName(t)] = t
	}

	var toks []*driver.Token
	scanner := bufio.NewScanner(src)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := scanner.Text()
		kind, ok := byName[word]
		if !ok {
			return fmt.Errorf("unknown terminal: %v", word)
		}
		toks = append(toks, &driver.Token{
			Kind: kind,
			Text: word,
		})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	p := driver.NewParser(tab, driver.NewSliceTokenStream(toks))
	root, err := p.Parse()
	if err != nil {
		return err
	}
	driver.PrintTree(os.Stdout, root)
	return nil
}
