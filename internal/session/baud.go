package session

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBaudRate = errors.New("invalid baud rate")

// BaudRule selects Baud for devices whose path contains Contains
type BaudRule struct {
	Contains string `mapstructure:"contains"`
	Baud     int    `mapstructure:"baud"`
}

// BaudRules picks a baud rate from a device path. The first matching rule
// wins, Default applies otherwise.
type BaudRules struct {
	Rules   []BaudRule
	Default int
}

// DefaultBaudRules returns 115200 for Cypress bridges (MSP432 LaunchPads)
// and 9600 for everything else
func DefaultBaudRules() BaudRules {
	return BaudRules{
		Rules:   []BaudRule{{Contains: "Cypress", Baud: 115200}},
		Default: 9600,
	}
}

// Select returns the baud rate for device
func (b BaudRules) Select(device string) int {
	for _, rule := range b.Rules {
		if rule.Contains != "" && strings.Contains(device, rule.Contains) {
			return rule.Baud
		}
	}
	return b.Default
}

// Validate checks every configured rate is positive
func (b BaudRules) Validate() error {
	if b.Default <= 0 {
		return fmt.Errorf("%w: default %d", ErrInvalidBaudRate, b.Default)
	}
	for _, rule := range b.Rules {
		if rule.Baud <= 0 {
			return fmt.Errorf("%w: %d for %q", ErrInvalidBaudRate, rule.Baud, rule.Contains)
		}
	}
	return nil
}
