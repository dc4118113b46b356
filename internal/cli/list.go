package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages from the registries",
	Long: `List every package of the configured registries, in registry order.
A package name listed by more than one registry is shown once per registry;
installs use the first one.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	idx, err := loadIndex(cmd.Context())
	if err != nil {
		return err
	}

	pkgs := idx.All()
	out := cmd.OutOrStdout()

	if listJSON {
		data, err := json.MarshalIndent(pkgs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling packages: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(pkgs) == 0 {
		fmt.Fprintln(out, "🤷 No packages found.")
		return nil
	}
	for _, p := range pkgs {
		fmt.Fprintf(out, "📦 %s\n", p.Name)
	}
	return nil
}
