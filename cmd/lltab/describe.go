package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/kagehara/lltab/def"
	"github.com/kagehara/lltab/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <grammar file>",
		Short:   "Print the transformed grammar and its sets in readable format",
		Example: `  lltab describe grammar.toml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		panicked := false
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				retErr = fmt.Errorf("an unexpected error occurred: %v", v)
				fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
				return
			}

			retErr = err
			panicked = true
		}

		if retErr != nil && panicked {
			fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
		}
	}()

	d, err := def.Load(args[0])
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

	name := func(tok grammar.Token) string {
		n, ok := b.TokenName(tok)
		if !ok {
			return tok.String()
		}
		return n
	}

	pterm.DefaultSection.Println("Terminals")
	termData := pterm.TableData{{"name", "token"}}
	for _, t := range b.Terminals().Tokens() {
		termData = append(termData, []string{name(t), fmt.Sprintf("%v", int(t))})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(termData).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Nonterminals")
	trans := b.Transformations()
	ntData := pterm.TableData{{"name", "token", "derived from"}}
	for _, n := range b.NonTerminals().Tokens() {
		from := ""
		if orig, ok := trans[n]; ok {
			from = name(orig)
		}
		ntData = append(ntData, []string{name(n), fmt.Sprintf("%v", int(n)), from})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(ntData).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Rules")
	ruleData := pterm.TableData{{"id", "rule", "PREDICT"}}
	for id := grammar.RuleID(1); int(id) <= tab.RuleCount(); id++ {
		var rhs []string
		for _, tok := range tab.RHS(id) {
			rhs = append(rhs, name(tok))
		}
		predict, _ := b.Predict(id)
		ruleData = append(ruleData, []string{
			fmt.Sprintf("%v", int(id)),
			fmt.Sprintf("%v → %v", name(tab.LHS(id)), strings.Join(rhs, " ")),
			tokenSetNames(b, predict),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(ruleData).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("FIRST / FOLLOW")
	setData := pterm.TableData{{"nonterminal", "FIRST", "FOLLOW"}}
	for _, n := range b.NonTerminals().Tokens() {
		first, _ := b.First(n)
		follow, _ := b.Follow(n)
		setData = append(setData, []string{name(n), tokenSetNames(b, first), tokenSetNames(b, follow)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(setData).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Parse Table")
	header := []string{""}
	for _, t := range tab.Terminals() {
		header = append(header, name(t))
	}
	gridData := pterm.TableData{header}
	for _, n := range tab.NonTerminals() {
		row := []string{name(n)}
		for _, t := range tab.Terminals() {
			cell := ""
			if id := tab.Lookup(n, t); id != grammar.RuleIDNil {
				cell = fmt.Sprintf("%v", int(id))
			}
			row = append(row, cell)
		}
		gridData = append(gridData, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(gridData).Render()
}

func tokenSetNames(b *grammar.Builder, set *grammar.TokenSet) string {
	if set == nil {
		return ""
	}
	var names []string
	for _, tok := range set.Tokens() {
		n, ok := b.TokenName(tok)
		if !ok {
			n = tok.String()
		}
		names = append(names, n)
	}
	return strings.Join(names, ", ")
}
