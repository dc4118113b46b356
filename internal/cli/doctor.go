package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/config"
	"github.com/upy-labs/upy/internal/registry"
)

var (
	checkPackager bool
	checkRegistry bool
	checkDevices  bool
	checkDocument string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkPackager, "check-packager", false, "Verify mpremote is available")
	doctorCmd.Flags().BoolVar(&checkRegistry, "check-registry", false, "Fetch and validate every configured registry")
	doctorCmd.Flags().BoolVar(&checkDevices, "check-devices", false, "Enumerate connected boards")
	doctorCmd.Flags().StringVar(&checkDocument, "check-document", "", "Validate a registry document at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the installation and environment",
	Long:  `Run diagnostic checks on the packager, the registries and the connected boards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		anyFlag := checkPackager || checkRegistry || checkDevices || checkDocument != ""

		if !anyFlag || checkPackager {
			runPackagerCheck(w)
		}
		if !anyFlag || checkDevices {
			runDevicesCheck(w)
		}
		if !anyFlag || checkRegistry {
			runRegistryCheck(cmd, w)
		}
		if checkDocument != "" {
			return runDocumentCheck(w, checkDocument)
		}
		return nil
	},
}

func runPackagerCheck(w io.Writer) {
	fmt.Fprintln(w, "Packager check:")
	name := config.PackagerCommand()
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found (install it with 'pip install mpremote')\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func runDevicesCheck(w io.Writer) {
	fmt.Fprintln(w, "Devices check:")
	devices, err := connectedDevices(board.Filter{})
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return
	}
	if len(devices) == 0 {
		fmt.Fprintln(w, "  [INFO] No USB serial devices connected")
		return
	}
	for _, d := range devices {
		status := "[ OK ]"
		if !d.Known() {
			status = "[INFO]"
		}
		fmt.Fprintf(w, "  %s %s\n", status, describeDevice(d))
	}
}

func runRegistryCheck(cmd *cobra.Command, w io.Writer) {
	fmt.Fprintln(w, "Registry check:")
	for _, src := range registrySources() {
		agg := registry.NewAggregator([]string{src},
			registry.WithHTTPClient(registry.NewHTTPClient(config.RegistryTimeout())),
			registry.WithLogger(logger),
		)
		pkgs, err := agg.Fetch(cmd.Context())
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %v\n", err)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s (%d packages)\n", src, len(pkgs))
	}
}

func runDocumentCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Registry document validation: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("reading %s: %w", path, err)
	}

	pkgs, err := registry.ParseDocument(data)
	if err == nil {
		fmt.Fprintf(w, "  [ OK ] Valid registry document with %d packages\n", len(pkgs))
		return nil
	}

	var schemaErr *registry.SchemaError
	if !errors.As(err, &schemaErr) {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("document %s is invalid: %w", path, err)
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(schemaErr.Issues))
	for _, issue := range schemaErr.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("document %s has %d validation issue(s)", path, len(schemaErr.Issues))
}
