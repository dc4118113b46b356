package cli

import (
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:     "find <pattern>",
	Aliases: []string{"search"},
	Short:   "Find packages matching a pattern",
	Long: `Find packages whose name, description or tags contain the pattern.
Matching is case-insensitive. Matches are highlighted in the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	idx, err := loadIndex(cmd.Context())
	if err != nil {
		return err
	}

	printMatches(cmd.OutOrStdout(), idx.Search(pattern), pattern, highlightStyle.Render)
	return nil
}
