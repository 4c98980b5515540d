package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/clausemark/clausemark/internal/convert"
	"github.com/clausemark/clausemark/internal/parser"
	"github.com/spf13/cobra"
)

var (
	convertTargets string
	convertOutput  string
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Convert a document file through an explicit format chain",
	Long: `Convert tokenizes FILE into a document tree, then runs the ordered
chain of target formats given with --to, each step feeding the next.

Example:
  clausemark convert contract.md --to markdown
  clausemark convert contract.docx --to styled -o contract.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0])
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertTargets, "to", "", "comma-separated target format chain (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default: stdout)")
	convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(filename string) error {
	var targets []string
	for _, t := range strings.Split(convertTargets, ",") {
		if t = strings.TrimSpace(t); t != "" {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return fmt.Errorf("--to must name at least one target format")
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		return err
	}
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	tree, err := p.Parse(f, filename)
	if err != nil {
		return fmt.Errorf("tokenize %s: %w", filename, err)
	}

	result, err := convert.Default().Run(tree, convert.FormatTree, targets)
	if err != nil {
		return err
	}

	out := os.Stdout
	if convertOutput != "" {
		out, err = os.Create(convertOutput)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	if s, ok := result.(string); ok {
		_, err = out.WriteString(s)
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
