package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ebnfgo",
	Short: "Parse and recognize input against an EBNF grammar",
	Long: `ebnfgo provides two features:
- Validates an EBNF grammar file (scan, lex, parse, preprocess).
- Recognizes a text stream against a chosen start rule and prints the
  resulting parse tree.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the CLI front-end of spec.md §6, an external collaborator
// of the core pipeline: it owns flag parsing, file I/O, and printing the
// "Error: <kind> at position line:column" line of spec.md §7 (formatted by
// ebnferr.Error.Render). The core pipeline itself prints nothing.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
