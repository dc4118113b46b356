package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/upy-labs/upy/internal/board"
)

var (
	devicesAll       bool
	devicesVendorID  string
	devicesProductID string
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected boards",
	Long: `List connected serial devices. By default only boards matching the
configured vendor (Arduino) are shown; use --all to list every USB serial device.`,
	Args: cobra.NoArgs,
	RunE: runDevices,
}

func init() {
	devicesCmd.Flags().BoolVar(&devicesAll, "all", false, "Show every USB serial device")
	devicesCmd.Flags().StringVar(&devicesVendorID, "vendor-id", "", "USB vendor ID filter in hex")
	devicesCmd.Flags().StringVar(&devicesProductID, "product-id", "", "USB product ID filter in hex")
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	var filter board.Filter
	if !devicesAll {
		f, err := deviceFilter(devicesVendorID, devicesProductID)
		if err != nil {
			return err
		}
		filter = f
	}

	devices, err := connectedDevices(filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(devices) == 0 {
		fmt.Fprintln(out, "🤷 No connected boards found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PORT\tBOARD\tUSB ID\tSERIAL")
	for _, d := range devices {
		serial := d.SerialNumber
		if serial == "" {
			serial = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Port, d.DisplayName(), d.USBID(), serial)
	}
	return w.Flush()
}
