package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/compat"
	"github.com/upy-labs/upy/internal/install"
	"github.com/upy-labs/upy/internal/registry"
)

var (
	installPort      string
	installVendorID  string
	installProductID string
	installTarget    string
	installYes       bool
	installKeepGoing bool
)

// errNoBoard is returned when no connected board passes the filter.
var errNoBoard = errors.New("no connected board found; connect a board and try again")

var installCmd = &cobra.Command{
	Use:   "install <package>...",
	Short: "Install packages on a connected board",
	Long: `Install MicroPython packages on a connected board.

Each argument is a registry package name, optionally pinned as name@version,
or a direct reference such as github:user/repo, a URL, or a .py file.
Registry packages declaring a runtime requirement are checked against the
MicroPython version on the board first; on a mismatch you are asked whether
to continue unless --yes is given.

Packages are installed one at a time, in order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installPort, "port", "p", "", "Serial port of the board to use")
	installCmd.Flags().StringVar(&installVendorID, "vendor-id", "", "USB vendor ID filter in hex")
	installCmd.Flags().StringVar(&installProductID, "product-id", "", "USB product ID filter in hex")
	installCmd.Flags().StringVarP(&installTarget, "target", "t", "", "Install directory on the board")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Install despite runtime mismatches without asking")
	installCmd.Flags().BoolVar(&installKeepGoing, "keep-going", false, "Continue with the next package after any failure")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	p := newPrompter(stdin, out)

	dev, err := resolveBoard(p)
	if err != nil {
		return err
	}

	tool := newBoardTool()
	o := install.NewOrchestrator(
		&lazyIndex{ctx: ctx},
		compat.NewGate(tool, compat.WithGateLogger(logger)),
		tool,
		install.WithReferencePolicy(referencePolicy()),
		install.WithTarget(installTarget),
		install.WithConfirm(confirmFunc(p)),
		install.WithLogger(logger),
	)

	opts := install.BatchOptions{StopOn: install.StopOnFatal}
	if installKeepGoing {
		opts.StopOn = nil
	}

	fmt.Fprintf(out, "📦 Installing %d package(s) on %s\n", len(args), describeDevice(dev))
	results := o.InstallAll(ctx, args, dev, opts)
	return reportResults(out, args, results)
}

// resolveBoard enumerates boards and picks the target: --port if given,
// the only board, or the user's choice among several.
func resolveBoard(p *prompter) (board.Device, error) {
	filter, err := deviceFilter(installVendorID, installProductID)
	if err != nil {
		return board.Device{}, err
	}
	devices, err := connectedDevices(filter)
	if err != nil {
		return board.Device{}, err
	}

	if installPort != "" {
		return board.Choose(devices, installPort)
	}

	sel := board.Select(devices)
	switch sel.Kind {
	case board.SelectionNone:
		return board.Device{}, errNoBoard
	case board.SelectionSingle:
		return sel.Device, nil
	default:
		return p.chooseDevice(sel.Choices)
	}
}

func confirmFunc(p *prompter) install.ConfirmFunc {
	return func(_ context.Context, m install.Mismatch) (bool, error) {
		if installYes {
			fmt.Fprintf(p.out, "🚨 Package '%s' requires runtime %s, board runs %s; installing anyway.\n",
				m.Package.Name, m.Required, m.Actual)
			return true, nil
		}
		return p.confirmMismatch(m)
	}
}

// reportResults prints one line per processed request and returns an error
// when any failed.
func reportResults(w io.Writer, requested []string, results []install.BatchResult) error {
	var failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			var notFound *registry.PackageNotFoundError
			if errors.As(r.Err, &notFound) {
				fmt.Fprintf(w, "🤷 No package found with name %s\n", notFound.Name)
				continue
			}
			fmt.Fprintf(w, "❌ %s: %v\n", r.Request, r.Err)
		case r.Outcome.Status == install.StatusSkipped:
			fmt.Fprintf(w, "🙅 Installation of '%s' skipped. Unsupported runtime installed.\n", r.Request)
		default:
			fmt.Fprintf(w, "✅ %s\n", r.Request)
		}
	}

	if notRun := len(requested) - len(results); notRun > 0 {
		fmt.Fprintf(w, "⏭️  %d package(s) not attempted\n", notRun)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d package(s) failed to install", failed, len(requested))
	}
	fmt.Fprintln(w, "✅ Installation complete")
	return nil
}
