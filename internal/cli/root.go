package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/branding"
	"github.com/upy-labs/upy/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	debug         bool
	registryFlags []string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: branding.CLIName()})

// stdin feeds interactive prompts.
var stdin io.Reader = os.Stdin

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs MicroPython packages on connected boards.

Packages are looked up in one or more registry documents, checked against
the MicroPython version running on the board, and installed with mip.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		if os.Getenv(branding.EnvVar("DEBUG")) != "" {
			debug = true
		}
		if debug {
			logger.SetLevel(log.DebugLevel)
			logger.SetReportCaller(true)
		}
		if err := board.DefaultTable().Validate(); err != nil {
			return fmt.Errorf("board descriptor table: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (or set "+branding.EnvVar("DEBUG")+")")
	rootCmd.PersistentFlags().StringArrayVar(&registryFlags, "registry", nil, "Registry URL or file to use instead of the configured ones (repeatable)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// reportError prints err for the user. With --debug every wrapped error in
// the chain is printed with its type.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "❌ %v\n", err)
	if !debug {
		return
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		fmt.Fprintf(w, "   %T: %v\n", e, e)
	}
}
