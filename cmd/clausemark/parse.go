package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/clausemark/clausemark/internal/combinator"
	"github.com/clausemark/clausemark/internal/grammar"
	"github.com/clausemark/clausemark/internal/template"
	"github.com/spf13/cobra"
)

var parseGrammarFile string

var parseCmd = &cobra.Command{
	Use:   "parse [INPUT]",
	Short: "Parse text against a template grammar",
	Long: `Parse compiles the grammar file given with --grammar (YAML or JSON,
a single grammar node or a node list) and applies it to INPUT, or to
stdin when INPUT is omitted. Bound values are printed as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		return runParse(input)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseGrammarFile, "grammar", "g", "", "template grammar file (required)")
	parseCmd.MarkFlagRequired("grammar")
	rootCmd.AddCommand(parseCmd)
}

func runParse(input string) error {
	gf, err := os.Open(parseGrammarFile)
	if err != nil {
		return err
	}
	nodes, err := grammar.Decode(gf)
	gf.Close()
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("grammar file %s is empty", parseGrammarFile)
	}

	var p combinator.Parser
	if len(nodes) == 1 {
		p, err = template.Compile(nodes[0])
	} else {
		p, err = template.CompileAll(nodes)
	}
	if err != nil {
		return err
	}

	var text []byte
	if input == "" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(input)
	}
	if err != nil {
		return err
	}

	result, err := template.Parse(p, string(text))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"bindings": result})
}
