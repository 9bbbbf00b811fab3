//go:build !unix

package session

import "errors"

// Exec is not available without execve; use Run
func (t Terminal) Exec(device string, baud int, goos string) error {
	return errors.New("exec not supported on this platform")
}
