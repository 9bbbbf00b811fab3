package uart

import "errors"

// Predefined error types for robust error handling
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInvalidConfig       = errors.New("invalid discovery configuration")

	// Device database errors
	ErrPropertyQuery = errors.New("device property query failed")
	ErrLinkResolve   = errors.New("cannot resolve serial device link")
)
