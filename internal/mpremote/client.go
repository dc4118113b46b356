package mpremote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/upy-labs/upy/internal/board"
)

// ErrNotInstalled is returned when the mpremote binary cannot be found.
var ErrNotInstalled = errors.New("mpremote is not installed")

// probeScript prints the MicroPython release, e.g. "1.22.2".
const probeScript = "import os; print(os.uname().release)"

// Runner executes a command and returns its captured output.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// CommandError reports a failed mpremote invocation. Its message is the
// tool's own error output.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if msg := lastLine(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("mpremote %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Client runs mpremote against a board.
type Client struct {
	command  string
	run      Runner
	lookPath func(string) (string, error)
	logger   *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCommand sets the mpremote executable name or path.
func WithCommand(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.command = name
		}
	}
}

// WithRunner replaces process execution (useful for testing).
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.run = r
		c.lookPath = func(name string) (string, error) { return name, nil }
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		command:  "mpremote",
		run:      execRunner,
		lookPath: exec.LookPath,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProbeRuntimeVersion returns the MicroPython release running on dev.
func (c *Client) ProbeRuntimeVersion(ctx context.Context, dev board.Device) (string, error) {
	out, err := c.exec(ctx, "connect", dev.Port, "exec", probeScript)
	if err != nil {
		return "", err
	}
	return lastLine(string(out)), nil
}

func (c *Client) exec(ctx context.Context, args ...string) ([]byte, error) {
	bin, err := c.lookPath(c.command)
	if err != nil {
		return nil, fmt.Errorf("%w: install it with 'pip install mpremote' (%v)", ErrNotInstalled, err)
	}

	c.logger.Debug("running mpremote", "args", args)
	stdout, stderr, err := c.run(ctx, bin, args...)
	if err != nil {
		return stdout, &CommandError{Args: args, Stderr: string(stderr), Err: err}
	}
	return stdout, nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// lastLine returns the last non-blank line of s, trimmed.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
