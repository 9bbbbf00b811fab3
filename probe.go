package uart

import (
	"fmt"
	"strings"

	"github.com/allbin/msp-uart/internal/libmsp430"
	"github.com/rs/zerolog"
)

// InterfaceLister reports the device names of the USB interfaces currently
// claimed by a debug-probe runtime
type InterfaceLister interface {
	ListInterfaces() ([]string, error)
}

// debugLibrary is the part of libmsp430 the lister needs
type debugLibrary interface {
	Path() string
	NumberOfUsbIfs() (int, error)
	NameOfUsbIf(idx int) (string, error)
}

// LibraryLister lists debug interfaces through TI's libmsp430.
//
// The library is loaded on first use and kept for the life of the process.
// Lookup failures for single interfaces are logged and skipped; a missing
// library is reported as libmsp430.ErrNotFound.
type LibraryLister struct {
	logger zerolog.Logger
	load   func() (debugLibrary, error)
	lib    debugLibrary
}

// NewLibraryLister returns a lister that loads the first loadable
// candidate. candidates is called on first use.
func NewLibraryLister(logger zerolog.Logger, candidates func() []string) *LibraryLister {
	return &LibraryLister{
		logger: logger,
		load: func() (debugLibrary, error) {
			lib, err := libmsp430.Load(candidates())
			if err != nil {
				return nil, err
			}
			return lib, nil
		},
	}
}

// ListInterfaces returns the interface names reported by the library
func (l *LibraryLister) ListInterfaces() ([]string, error) {
	if l.lib == nil {
		lib, err := l.load()
		if err != nil {
			return nil, err
		}
		l.logger.Debug().Str("library", lib.Path()).Msg("Loaded MSP430 debug library")
		l.lib = lib
	}

	number, err := l.lib.NumberOfUsbIfs()
	if err != nil {
		return nil, err
	}
	if number < 0 {
		return nil, fmt.Errorf("%s reported %d USB interfaces", l.lib.Path(), number)
	}

	names := make([]string, 0, number)
	for idx := 0; idx < number; idx++ {
		name, err := l.lib.NameOfUsbIf(idx)
		if err != nil {
			l.logger.Error().Err(err).Int("index", idx).Msg("Could not obtain port name of USB interface")
			continue
		}
		names = append(names, name)
	}

	l.logger.Debug().
		Int("count", number).
		Str("interfaces", strings.Join(names, ", ")).
		Msg("Found USB debugging interfaces")

	return names, nil
}
