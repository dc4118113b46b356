package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/install"
)

// prompter asks questions on a shared reader so buffered input is not lost
// between prompts.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// chooseDevice lists devices and returns the one picked by number.
func (p *prompter) chooseDevice(devices []board.Device) (board.Device, error) {
	fmt.Fprintln(p.out, "\nSeveral boards are connected:")
	for i, d := range devices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, describeDevice(d))
	}
	fmt.Fprintf(p.out, "Enter number [1-%d]: ", len(devices))

	line, err := p.readLine()
	if err != nil {
		return board.Device{}, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(devices) {
		return board.Device{}, fmt.Errorf("invalid selection %q: choose 1-%d", line, len(devices))
	}
	return board.Choose(devices, devices[num-1].Port)
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (p *prompter) confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "? %s (y/N) ", question)
	line, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("reading answer: %w", err)
	}
	answer := strings.ToLower(line)
	return answer == "y" || answer == "yes", nil
}

// confirmMismatch explains a runtime mismatch and asks whether to go on.
func (p *prompter) confirmMismatch(m install.Mismatch) (bool, error) {
	fmt.Fprintf(p.out, "🚨 Package '%s' requires a different runtime version (%s) than the one running on the board (%s).\n",
		m.Package.Name, m.Required, m.Actual)
	return p.confirm("Do you want to continue with the installation?")
}

func describeDevice(d board.Device) string {
	s := d.DisplayName()
	if d.SerialNumber != "" {
		s += " (SN: " + d.SerialNumber + ")"
	}
	return s + " on " + d.Port
}
