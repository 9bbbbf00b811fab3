package uart

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PropertyQuerier returns the device-database properties of a device node
type PropertyQuerier interface {
	Query(ctx context.Context, device string) (map[string]string, error)
}

// Udevadm queries the udev database through the udevadm utility
type Udevadm struct {
	// Path to the udevadm binary, looked up in PATH when empty
	Path string
}

// Query runs `udevadm info --name=<device>` and parses its property dump.
// A launch failure or non-zero exit is returned as ErrPropertyQuery.
func (u Udevadm) Query(ctx context.Context, device string) (map[string]string, error) {
	bin := u.Path
	if bin == "" {
		bin = "udevadm"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "info", "--name="+device)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%w: %s: %v (%s)", ErrPropertyQuery, device, err, msg)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrPropertyQuery, device, err)
	}

	return ParseProperties(string(out)), nil
}

// ParseProperties extracts key=value pairs from udevadm info output.
//
// Each record looks like "E: ID_VENDOR_ID=0451": the prefix token up to the
// first colon is dropped and only remainders containing '=' are kept. Other
// records (P:, N:, S: ...) carry no '=' and are ignored.
func ParseProperties(output string) map[string]string {
	props := make(map[string]string)

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		_, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		rest = strings.TrimSpace(rest)

		key, value, found := strings.Cut(rest, "=")
		if !found {
			continue
		}
		props[key] = value
	}

	return props
}
