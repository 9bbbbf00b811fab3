// Package session starts a terminal emulator on a discovered UART
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

var (
	ErrTerminalNotFound = errors.New("terminal program not installed")
	ErrVersionUnknown   = errors.New("cannot determine terminal program version")
)

// DefaultProgram is the terminal emulator launched on the selected device
const DefaultProgram = "minicom"

// Terminal describes how to launch the terminal emulator
type Terminal struct {
	Program string
	// Env is appended to the process environment of every invocation
	Env []string
}

// DefaultTerminal returns minicom with English messages, whose version
// output is parsed by Version
func DefaultTerminal() Terminal {
	return Terminal{
		Program: DefaultProgram,
		Env:     []string{"LC_MESSAGES=en_US.UTF-8"},
	}
}

// LookPath returns the absolute path of the terminal program
func (t Terminal) LookPath() (string, error) {
	path, err := exec.LookPath(t.program())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTerminalNotFound, t.program())
	}
	return path, nil
}

// Version runs `<program> -v` and returns the third word of its output,
// e.g. "2.8" for "minicom version 2.8 (compiled Jan  1 2023)". The exit
// status is ignored as long as the output has a version.
func (t Terminal) Version(ctx context.Context) (string, error) {
	path, err := t.LookPath()
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, path, "-v")
	cmd.Env = t.Environ()
	out, runErr := cmd.Output()

	fields := strings.Fields(string(out))
	if len(fields) < 3 {
		if runErr != nil {
			return "", fmt.Errorf("%w: %w", ErrVersionUnknown, runErr)
		}
		return "", ErrVersionUnknown
	}
	return fields[2], nil
}

// Args returns the argv used to open device at baud. macOS needs -m so
// the Option key acts as Meta.
func (t Terminal) Args(device string, baud int, goos string) []string {
	args := []string{t.program(), "--device=" + device, "--baudrate", strconv.Itoa(baud)}
	if goos == "darwin" {
		args = append(args, "-m")
	}
	return args
}

// Environ returns the process environment with Env applied
func (t Terminal) Environ() []string {
	return append(os.Environ(), t.Env...)
}

// Command returns the terminal command with stdio attached to ours
func (t Terminal) Command(ctx context.Context, device string, baud int, goos string) (*exec.Cmd, error) {
	path, err := t.LookPath()
	if err != nil {
		return nil, err
	}

	args := t.Args(device, baud, goos)
	cmd := exec.CommandContext(ctx, path, args[1:]...)
	cmd.Env = t.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Run starts the terminal as a child process and waits for it to exit
func (t Terminal) Run(ctx context.Context, device string, baud int, goos string) error {
	cmd, err := t.Command(ctx, device, baud, goos)
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (t Terminal) program() string {
	if t.Program == "" {
		return DefaultProgram
	}
	return t.Program
}
