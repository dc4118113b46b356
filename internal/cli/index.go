package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upy-labs/upy/internal/indexer"
)

var indexCmd = &cobra.Command{
	Use:   "index <directory> <output.yaml>",
	Short: "Generate a registry document from a package directory",
	Long: `Walk a directory tree (such as a micropython-lib checkout) and write a
registry document listing every directory that contains a package.json or a
manifest.py. The directory name is used as the package name and url.`,
	Args: cobra.ExactArgs(2),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	dir, output := args[0], args[1]

	res, err := indexer.Write(dir, output)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d package(s) to %s\n", len(res.Packages), output)
	return nil
}
