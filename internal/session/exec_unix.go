//go:build unix

package session

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Exec replaces the current process with the terminal. It only returns on
// failure.
func (t Terminal) Exec(device string, baud int, goos string) error {
	path, err := t.LookPath()
	if err != nil {
		return err
	}

	if err := unix.Exec(path, t.Args(device, baud, goos), t.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
