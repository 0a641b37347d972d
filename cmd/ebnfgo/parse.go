package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bellinitte/parser-parser"
	"github.com/bellinitte/parser-parser/ebnferr"
	"github.com/bellinitte/parser-parser/recognize"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
	format *string
}{}

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
)

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar-file> <start-rule>",
		Short:   "Recognize a text stream against a grammar's start rule",
		Example: `  cat src | ebnfgo parse grammar.ebnf number`,
		Args:    cobra.ExactArgs(2),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.format = cmd.Flags().StringP("format", "f", outputFormatText, "output format: one of text|json")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if *parseFlags.format != outputFormatText && *parseFlags.format != outputFormatJSON {
		return fmt.Errorf("invalid output format: %v", *parseFlags.format)
	}

	grmPath, start := args[0], args[1]

	grmSrc, err := os.ReadFile(grmPath)
	if err != nil {
		return fmt.Errorf("cannot open the grammar file %s: %w", grmPath, err)
	}

	g, err := ebnf.Prepare(string(grmSrc))
	if err != nil {
		if specErr, ok := err.(*ebnferr.Error); ok {
			return fmt.Errorf("%s", specErr.Render())
		}
		return err
	}

	src := io.Reader(os.Stdin)
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}

	failed := false
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()

		tree, ok := g.Recognize(start, line, nil)
		if !ok {
			fmt.Fprintf(os.Stdout, "reject: %s\n", strconv.Quote(line))
			failed = true
			continue
		}

		switch *parseFlags.format {
		case outputFormatJSON:
			b, err := json.Marshal(tree)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(b))
		default:
			printTree(os.Stdout, tree, "", "")
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if failed {
		return fmt.Errorf("one or more lines were rejected")
	}
	return nil
}

// printTree renders a recognize.Node the way the teacher's
// driver.PrintTree renders its own Node: one line per node, children
// drawn with box-drawing connectors.
func printTree(w io.Writer, node recognize.Node, ruledLine, childPrefix string) {
	switch n := node.(type) {
	case recognize.TerminalNode:
		fmt.Fprintf(w, "%s%s\n", ruledLine, strconv.Quote(n.Literal))
	case recognize.NonterminalNode:
		fmt.Fprintf(w, "%s%s\n", ruledLine, n.Name)
		num := len(n.Children)
		for i, child := range n.Children {
			var line, prefix string
			if i < num-1 {
				line, prefix = "├─ ", "│  "
			} else {
				line, prefix = "└─ ", "   "
			}
			printTree(w, child, childPrefix+line, childPrefix+prefix)
		}
	}
}
