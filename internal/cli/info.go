package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/upy-labs/upy/internal/registry"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show information about a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	idx, err := loadIndex(cmd.Context())
	if err != nil {
		return err
	}

	pkg, err := idx.FindByName(name)
	if errors.Is(err, registry.ErrPackageNotFound) {
		fmt.Fprintf(out, "🤷 No package found with name %s\n", name)
		return nil
	}
	if err != nil {
		return err
	}

	if infoJSON {
		data, err := json.MarshalIndent(pkg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling package: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s:\t%s\n", label, value)
		}
	}
	row("Name", pkg.Name)
	row("URL", pkg.URL)
	row("Version", pkg.Version)
	row("Description", pkg.Description)
	row("Tags", strings.Join(pkg.Tags, ", "))
	row("Author", pkg.Author)
	row("License", pkg.License)
	row("Runtime", pkg.RequiredRuntime())
	row("Docs", pkg.Docs)
	if pkg.Descriptor() != nil {
		row("Overrides", "custom package descriptor")
	}
	return w.Flush()
}
