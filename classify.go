package uart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/allbin/msp-uart/internal/libmsp430"
	"github.com/rs/zerolog"
)

// LinkResolver returns the target of a serial device link
type LinkResolver func(path string) (string, error)

// ExclusionReason says why a candidate was dropped
type ExclusionReason string

const (
	ReasonDebugInterface ExclusionReason = "debug interface"
	ReasonProbeSignature ExclusionReason = "probe signature"
)

// Exclusion records a candidate removed by the classifier
type Exclusion struct {
	Path      string
	Target    string
	Reason    ExclusionReason
	Signature Signature   // Set for ReasonProbeSignature
	Family    ProbeFamily // Set for ReasonProbeSignature
}

// Result is the outcome of one classification pass
type Result struct {
	UARTs    []string // Sorted application UART paths
	Excluded []Exclusion
}

// Classifier removes debug-probe interfaces from a list of serial device
// links. Two sources are combined: the interfaces claimed by the vendor
// debug library and the USB signatures of known probe functions.
type Classifier struct {
	logger     zerolog.Logger
	interfaces InterfaceLister
	listerSet  bool
	properties PropertyQuerier
	resolve    LinkResolver
	signatures SignatureSet
}

// ClassifierOption configures a Classifier
type ClassifierOption func(*Classifier)

// WithInterfaceLister sets the debug library source. A nil lister disables
// the library check.
func WithInterfaceLister(lister InterfaceLister) ClassifierOption {
	return func(c *Classifier) {
		c.interfaces = lister
		c.listerSet = true
	}
}

// WithPropertyQuerier sets the device property source
func WithPropertyQuerier(querier PropertyQuerier) ClassifierOption {
	return func(c *Classifier) {
		c.properties = querier
	}
}

// WithLinkResolver sets how candidate links are resolved
func WithLinkResolver(resolve LinkResolver) ClassifierOption {
	return func(c *Classifier) {
		c.resolve = resolve
	}
}

// WithSignatures replaces the built-in probe signature tables
func WithSignatures(set SignatureSet) ClassifierOption {
	return func(c *Classifier) {
		c.signatures = set
	}
}

// NewClassifier returns a classifier using libmsp430, udevadm and the
// built-in signature tables unless overridden
func NewClassifier(logger zerolog.Logger, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		logger:     logger,
		properties: Udevadm{},
		resolve:    ReadLink,
		signatures: DefaultSignatures(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if !c.listerSet {
		c.interfaces = NewLibraryLister(logger, libmsp430.DefaultCandidates)
	}
	return c
}

// Classify returns the sorted candidates that are not debug-probe interfaces
func (c *Classifier) Classify(ctx context.Context, candidates []string) ([]string, error) {
	res, err := c.ClassifyDetailed(ctx, candidates)
	if err != nil {
		return nil, err
	}
	return res.UARTs, nil
}

// ClassifyDetailed is Classify that also reports what was excluded and why.
//
// Candidates whose properties lack any of vendor id, model id or interface
// number are kept. Link resolution and property query failures abort the
// pass.
func (c *Classifier) ClassifyDetailed(ctx context.Context, candidates []string) (Result, error) {
	debugIfs := c.debugInterfaces()

	res := Result{UARTs: make([]string, 0, len(candidates))}
	for _, path := range candidates {
		target, err := c.resolve(path)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s: %w", ErrLinkResolve, path, err)
		}
		base := filepath.Base(target)

		if _, ok := debugIfs[base]; ok {
			c.logger.Info().Str("path", path).Str("target", base).
				Msg("Detected a debugging interface, skipping")
			res.Excluded = append(res.Excluded, Exclusion{Path: path, Target: target, Reason: ReasonDebugInterface})
			continue
		}

		props, err := c.properties.Query(ctx, path)
		if err != nil {
			return Result{}, fmt.Errorf("classify %s: %w", path, err)
		}

		sig := SignatureFromProperties(props)
		c.logger.Debug().Str("path", path).Str("signature", sig.String()).Msg("Resolved USB signature")

		if family, ok := c.signatures.Lookup(sig); ok {
			c.logger.Info().Str("path", path).Str("signature", sig.String()).Str("family", string(family)).
				Msg("Detected a debug probe port, skipping")
			res.Excluded = append(res.Excluded, Exclusion{
				Path:      path,
				Target:    target,
				Reason:    ReasonProbeSignature,
				Signature: sig,
				Family:    family,
			})
			continue
		}

		res.UARTs = append(res.UARTs, path)
	}

	sort.Strings(res.UARTs)
	res.UARTs = slices.Compact(res.UARTs)

	return res, nil
}

// debugInterfaces returns the interface names claimed by the debug library.
// Failures never abort classification.
func (c *Classifier) debugInterfaces() map[string]struct{} {
	set := make(map[string]struct{})
	if c.interfaces == nil {
		return set
	}

	names, err := c.interfaces.ListInterfaces()
	switch {
	case errors.Is(err, libmsp430.ErrNotFound), errors.Is(err, libmsp430.ErrUnsupported):
		c.logger.Info().Msg("libmsp430 is not found, skipping detection of MSP430 debugging interfaces")
		return set
	case err != nil:
		c.logger.Error().Err(err).Msg("Could not determine number of USB interfaces")
		return set
	}

	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// ReadLink resolves one level of symlink. Relative targets are joined to
// the link's directory; a path that is not a link resolves to itself.
func ReadLink(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}

	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}
