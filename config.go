package uart

import (
	"runtime"
	"strings"

	"github.com/allbin/msp-uart/internal/libmsp430"
	"github.com/rs/zerolog"
)

// Config holds the discovery configuration
type Config struct {
	GOOS string // Target platform, decides the discovery branch

	// macOS
	DeviceDir   string // Flat device directory
	ModemPrefix string // Name prefix of USB modem devices
	UARTSuffix  string // Name suffix of the application UART interface

	// Linux
	ByIDDir      string   // Directory of stable serial device symlinks
	LibraryName  string   // libmsp430 name handed to the dynamic loader
	LibraryGlobs []string // Fallback install locations, "~/" expands to $HOME
	Udevadm      string   // udevadm binary

	Logger     zerolog.Logger
	Classifier *Classifier // Overrides the classifier built from the fields above
}

// Option is a functional option for configuring discovery
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		GOOS:         runtime.GOOS,
		DeviceDir:    "/dev",
		ModemPrefix:  "cu.usbmodem",
		UARTSuffix:   "03", // third USB interface carries the application UART
		ByIDDir:      "/dev/serial/by-id",
		LibraryName:  libmsp430.DefaultName,
		LibraryGlobs: libmsp430.DefaultGlobs(),
		Udevadm:      "udevadm",
		Logger:       zerolog.Nop(),
	}
}

// WithGOOS overrides the detected platform
func WithGOOS(goos string) Option {
	return func(c *Config) error {
		if goos == "" {
			return ErrInvalidConfig
		}
		c.GOOS = goos
		return nil
	}
}

// WithDeviceDir sets the device directory scanned on macOS
func WithDeviceDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return ErrInvalidConfig
		}
		c.DeviceDir = dir
		return nil
	}
}

// WithModemPrefix sets the device name prefix matched on macOS
func WithModemPrefix(prefix string) Option {
	return func(c *Config) error {
		if prefix == "" || strings.Contains(prefix, "/") {
			return ErrInvalidConfig
		}
		c.ModemPrefix = prefix
		return nil
	}
}

// WithUARTSuffix sets the device name suffix of the UART interface on macOS
func WithUARTSuffix(suffix string) Option {
	return func(c *Config) error {
		c.UARTSuffix = suffix
		return nil
	}
}

// WithByIDDir sets the by-id symlink directory scanned on Linux
func WithByIDDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return ErrInvalidConfig
		}
		c.ByIDDir = dir
		return nil
	}
}

// WithLibraryName sets the libmsp430 name tried first. Empty skips it.
func WithLibraryName(name string) Option {
	return func(c *Config) error {
		c.LibraryName = name
		return nil
	}
}

// WithLibraryGlobs sets the fallback libmsp430 locations
func WithLibraryGlobs(globs ...string) Option {
	return func(c *Config) error {
		c.LibraryGlobs = globs
		return nil
	}
}

// WithUdevadm sets the udevadm binary
func WithUdevadm(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return ErrInvalidConfig
		}
		c.Udevadm = path
		return nil
	}
}

// WithLogger sets the logger used by discovery
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithClassifier replaces the default classifier
func WithClassifier(classifier *Classifier) Option {
	return func(c *Config) error {
		if classifier == nil {
			return ErrInvalidConfig
		}
		c.Classifier = classifier
		return nil
	}
}
