package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/clausewise/internal/acquire"
	"github.com/ppiankov/clausewise/internal/classify"
	"github.com/ppiankov/clausewise/internal/model"
)

// sampleCmd prints the built-in sample contract
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the built-in sample contract",
	Long: `Print the six-clause sample contract used by 'extract --sample'.

Example:
  clausewise sample > sample.txt
  clausewise extract sample.txt`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), acquire.SampleText)
	},
}

// categoriesCmd prints the risk taxonomy
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List risk categories and their trigger words",
	Long: `List every risk category with the trigger words that select it.

A clause gets a category when its lowercased text contains any trigger
as a substring. Clauses matching nothing are shown as None.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, rule := range classify.Taxonomy() {
			fmt.Fprintf(out, "%-20s %s\n", rule.Category, strings.Join(rule.Triggers, ", "))
		}
		fmt.Fprintf(out, "%-20s %s\n", model.CategoryNone, "(no trigger matched)")
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(categoriesCmd)
}
