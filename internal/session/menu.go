package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrNoDevices        = errors.New("no devices found")
	ErrNoSelection      = errors.New("no device selected")
	ErrInvalidSelection = errors.New("invalid device selection")
)

// PrintDevices writes the numbered device list
func PrintDevices(w io.Writer, devices []string) {
	fmt.Fprintf(w, "Found %d MSP430 UART Terminal(s)\n", len(devices))
	for i, device := range devices {
		fmt.Fprintf(w, "%d\t%s\n", i, device)
	}
}

// Prompt returns the selection prompt for n devices, e.g.
// "Device to connect [0, 1, 2]: "
func Prompt(n int) string {
	indexes := make([]string, n)
	for i := range indexes {
		indexes[i] = strconv.Itoa(i)
	}
	return fmt.Sprintf("Device to connect [%s]: ", strings.Join(indexes, ", "))
}

// SelectPlain lists devices on w and reads a choice from r.
//
// A single device is selected without asking. Input that is not a number
// (or EOF) returns ErrNoSelection, an out of range number returns
// ErrInvalidSelection.
func SelectPlain(r io.Reader, w io.Writer, devices []string) (int, error) {
	PrintDevices(w, devices)

	switch len(devices) {
	case 0:
		return -1, ErrNoDevices
	case 1:
		return 0, nil
	}

	fmt.Fprint(w, Prompt(len(devices)))

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return -1, ErrNoSelection
	}

	idx, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1, ErrNoSelection
	}
	if idx < 0 || idx >= len(devices) {
		return -1, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidSelection, idx, len(devices)-1)
	}
	return idx, nil
}
