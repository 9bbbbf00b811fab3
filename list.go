package uart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/allbin/msp-uart/internal/libmsp430"
)

// Enumerator discovers the application UARTs of attached MSP430 boards
type Enumerator struct {
	config     Config
	classifier *Classifier
}

// NewEnumerator returns an enumerator for the configured platform
func NewEnumerator(opts ...Option) (*Enumerator, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	classifier := config.Classifier
	if classifier == nil && config.GOOS == "linux" {
		logger := config.Logger.With().Str("component", "classifier").Logger()
		candidates := func() []string {
			home, _ := os.UserHomeDir()
			return libmsp430.Candidates(config.LibraryName, config.LibraryGlobs, home)
		}
		classifier = NewClassifier(logger,
			WithInterfaceLister(NewLibraryLister(logger, candidates)),
			WithPropertyQuerier(Udevadm{Path: config.Udevadm}),
		)
	}

	return &Enumerator{config: config, classifier: classifier}, nil
}

// Classifier returns the classifier applied to Linux candidates. It is nil
// on macOS unless set with WithClassifier.
func (e *Enumerator) Classifier() *Classifier {
	return e.classifier
}

// ListUARTs returns the application UARTs using the given options
func ListUARTs(ctx context.Context, opts ...Option) ([]string, error) {
	e, err := NewEnumerator(opts...)
	if err != nil {
		return nil, err
	}
	return e.List(ctx)
}

// List returns the sorted application UART paths.
//
// On macOS the USB modem devices of the UART interface are returned as is.
// On Linux every by-id link is classified and debug-probe interfaces are
// removed. Other platforms return ErrUnsupportedPlatform.
func (e *Enumerator) List(ctx context.Context) ([]string, error) {
	res, err := e.ListDetailed(ctx)
	if err != nil {
		return nil, err
	}
	return res.UARTs, nil
}

// ListDetailed is List that also reports the candidates removed on Linux
func (e *Enumerator) ListDetailed(ctx context.Context) (Result, error) {
	switch e.config.GOOS {
	case "darwin":
		uarts, err := e.listModems()
		if err != nil {
			return Result{}, err
		}
		return Result{UARTs: uarts}, nil
	case "linux":
		candidates, err := e.Candidates()
		if err != nil {
			return Result{}, err
		}
		return e.classifier.ClassifyDetailed(ctx, candidates)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, e.config.GOOS)
	}
}

// Candidates returns the unfiltered by-id links on Linux
func (e *Enumerator) Candidates() ([]string, error) {
	entries, err := os.ReadDir(e.config.ByIDDir)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		// glob semantics: hidden entries are not devices
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		candidates = append(candidates, filepath.Join(e.config.ByIDDir, entry.Name()))
	}

	return candidates, nil
}

// listModems returns the USB modem devices whose name marks the UART
// interface
func (e *Enumerator) listModems() ([]string, error) {
	entries, err := os.ReadDir(e.config.DeviceDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, e.config.ModemPrefix) && strings.HasSuffix(name, e.config.UARTSuffix) {
			names = append(names, name)
		}
	}

	// Sort the ports for consistent ordering
	sort.Strings(names)

	uarts := make([]string, 0, len(names))
	for _, name := range names {
		uarts = append(uarts, filepath.Join(e.config.DeviceDir, name))
	}
	return uarts, nil
}
