// Package libmsp430 binds the parts of TI's MSP430 debug stack (libmsp430)
// needed to list the USB interfaces claimed by a connected debug probe.
//
// The library is loaded at runtime without cgo. Only three entry points are
// used, following the USB interface example in SLAU656:
//
//	int32_t MSP430_GetNumberOfUsbIfs(int32_t* Number);
//	int32_t MSP430_GetNameOfUsbIf(int32_t Idx, char** Name, int32_t* Status);
//	int32_t MSP430_Error_Number(void);
//
// A loaded library is never unloaded.
package libmsp430

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is the file name handed to the dynamic loader first
const DefaultName = "libmsp430.so"

// DefaultGlobs returns the install locations used by Code Composer Studio
func DefaultGlobs() []string {
	return []string{
		"~/ti/*/ccs/ccs_base/DebugServer/drivers/" + DefaultName,
	}
}

// statusOK is returned by every entry point on success
const statusOK = 0

var (
	ErrNotFound    = errors.New("libmsp430 not found")
	ErrUnsupported = errors.New("libmsp430 loading not supported on this platform")
	ErrNotASCII    = errors.New("interface name is not ASCII")
)

// StatusError is returned when an entry point reports a non-zero status
type StatusError struct {
	Op     string
	Status int32
	// Code is the value of MSP430_Error_Number after the failure
	Code int32
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed with status %d (error number %d)", e.Op, e.Status, e.Code)
}

// Library is an opened libmsp430
type Library struct {
	path string

	getNumberOfUsbIfs func(number *int32) int32
	getNameOfUsbIf    func(idx int32, name **byte, status *int32) int32
	errorNumber       func() int32
}

// Path returns the candidate the library was loaded from
func (l *Library) Path() string {
	return l.path
}

// NumberOfUsbIfs returns how many USB debug interfaces the library sees
func (l *Library) NumberOfUsbIfs() (int, error) {
	var number int32
	if status := l.getNumberOfUsbIfs(&number); status != statusOK {
		return 0, &StatusError{Op: "MSP430_GetNumberOfUsbIfs", Status: status, Code: l.errorNumber()}
	}
	return int(number), nil
}

// NameOfUsbIf returns the device name of the interface at idx
func (l *Library) NameOfUsbIf(idx int) (string, error) {
	var (
		name   *byte
		status int32
	)
	if ret := l.getNameOfUsbIf(int32(idx), &name, &status); ret != statusOK {
		return "", &StatusError{Op: "MSP430_GetNameOfUsbIf", Status: ret, Code: l.errorNumber()}
	}
	return asciiString(name)
}

// Candidates returns the load order: the bare name first (resolved by the
// dynamic loader), then every match of globs. A leading "~/" in a glob is
// expanded to home.
func Candidates(name string, globs []string, home string) []string {
	var candidates []string
	if name != "" {
		candidates = append(candidates, name)
	}

	for _, pattern := range globs {
		if home != "" && strings.HasPrefix(pattern, "~/") {
			pattern = filepath.Join(home, pattern[2:])
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		candidates = append(candidates, matches...)
	}

	return candidates
}

// DefaultCandidates returns Candidates for DefaultName and DefaultGlobs
// using the current user's home directory
func DefaultCandidates() []string {
	home, _ := os.UserHomeDir()
	return Candidates(DefaultName, DefaultGlobs(), home)
}

// Load opens the first candidate that loads. When none does the returned
// error wraps ErrNotFound and the last loader error.
func Load(candidates []string) (*Library, error) {
	var lastErr error
	for _, candidate := range candidates {
		lib, err := Open(candidate)
		if err == nil {
			return lib, nil
		}
		if errors.Is(err, ErrUnsupported) {
			return nil, err
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, lastErr)
	}
	return nil, ErrNotFound
}
