package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clausemark",
	Short: "Contract document conversion and template parsing",
	Long: `clausemark converts legal-contract documents between structured tree
representations and parses filled-in contract text against compiled
document templates.

Commands:
  serve    - run the HTTP conversion service
  convert  - convert a document file through an explicit format chain
  parse    - parse text against a template grammar`,
	SilenceUsage: true,
}
