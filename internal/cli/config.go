package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upy-labs/upy/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.upy/config.yaml.

Keys:
  registry.urls          comma-separated registry documents, earlier wins
  registry.timeout       per-request timeout, e.g. 30s
  device.vendor_id       USB vendor filter in hex (empty for any)
  device.product_id      USB product filter in hex (empty for any)
  packager.command       mpremote executable
  reference.prefixes     prefixes that mark a direct install reference
  reference.suffixes     file extensions that mark a direct install reference
  reference.any_scheme   treat any "scheme:" prefix as a direct reference`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
