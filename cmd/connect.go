/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/allbin/msp-uart/internal/logging"
	"github.com/allbin/msp-uart/internal/session"
	"github.com/allbin/msp-uart/internal/tui/picker"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Pick a UART and open minicom on it",
	Long: `Discover MSP430 UARTs, let you pick one and open minicom on it.

A single UART is opened without asking. With several, an interactive
picker is shown (or a numbered prompt with --plain or when stdin is not
a terminal).

The baud rate is 115200 for devices whose name contains "Cypress" and
9600 otherwise, unless configured with baud.rules / baud.default or
forced with --baud.

Example usage:
  mspuart connect
  mspuart connect --baud 115200
  mspuart connect --plain --no-exec`,
	Args: cobra.NoArgs,
	Run:  runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
	addConnectFlags(connectCmd)
}

func addConnectFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("baud", "b", 0, "Force the baud rate instead of applying baud rules")
	cmd.Flags().BoolP("plain", "p", false, "Use a numbered prompt instead of the interactive picker")
	cmd.Flags().Bool("no-exec", false, "Run the terminal as a child process instead of replacing mspuart")
}

// notInstalled is the message shown when the terminal program is missing
func notInstalled(program string) string {
	if program == session.DefaultProgram {
		return "Minicom is not installed"
	}
	return fmt.Sprintf("%s is not installed", program)
}

func runConnect(cmd *cobra.Command, args []string) {
	s, logger, e, err := setup()
	if err != nil {
		fatal("%v", err)
	}

	forcedBaud, _ := cmd.Flags().GetInt("baud")
	plain, _ := cmd.Flags().GetBool("plain")
	noExec, _ := cmd.Flags().GetBool("no-exec")

	rules := s.baudRules()
	if forcedBaud != 0 {
		rules = session.BaudRules{Default: forcedBaud}
	}
	if err := rules.Validate(); err != nil {
		fatal("%v", err)
	}

	term := s.terminal()
	version, err := term.Version(cmd.Context())
	if errors.Is(err, session.ErrTerminalNotFound) {
		fmt.Fprintln(os.Stderr, notInstalled(term.Program))
		os.Exit(1)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Could not determine terminal version")
		version = "unknown"
	}

	res, err := discover(cmd, s, e, logger)
	if err != nil {
		fatal("%v", err)
	}
	devices := res.UARTs

	title := fmt.Sprintf("MSP430 Minicom Connector (%s version %s)", term.Program, version)

	var idx int
	if plain || len(devices) <= 1 || !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("%s\n\n", title)
		idx, err = session.SelectPlain(os.Stdin, os.Stdout, devices)
	} else {
		rows := make([]picker.Device, len(devices))
		for i, device := range devices {
			rows[i] = picker.Device{Path: device, Baud: rules.Select(device)}
		}
		idx, err = picker.Run(title, rows)
	}

	switch {
	case errors.Is(err, session.ErrNoDevices):
		fmt.Println("No devices found")
		os.Exit(0)
	case errors.Is(err, session.ErrNoSelection), errors.Is(err, picker.ErrCancelled):
		fmt.Println("Exit")
		os.Exit(0)
	case err != nil:
		fatal("%v", err)
	}

	device := devices[idx]
	baud := rules.Select(device)
	sessionLogger := logging.WithComponent(logger, "session")
	sessionLogger.Debug().Str("device", device).Int("baud", baud).Str("terminal", term.Program).Msg("Launching terminal")

	if noExec {
		err = term.Run(cmd.Context(), device, baud, runtime.GOOS)
	} else {
		err = term.Exec(device, baud, runtime.GOOS)
	}
	if err != nil {
		fatal("%v", err)
	}
}
