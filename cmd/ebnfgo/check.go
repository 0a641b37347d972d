package main

import (
	"fmt"
	"os"

	"github.com/bellinitte/parser-parser"
	"github.com/bellinitte/parser-parser/ebnferr"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check <grammar-file>",
		Short:   "Validate an EBNF grammar without recognizing anything",
		Example: `  ebnfgo check grammar.ebnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot open the grammar file %s: %w", args[0], err)
	}

	g, err := ebnf.Prepare(string(src))
	if err != nil {
		if specErr, ok := err.(*ebnferr.Error); ok {
			return fmt.Errorf("%s", specErr.Render())
		}
		return err
	}

	for _, w := range g.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s at position %s\n", w.Message, w.Span.From)
	}

	names := g.ProductionNames()
	fmt.Fprintf(os.Stdout, "ok: %d production(s)\n", len(names))
	return nil
}
