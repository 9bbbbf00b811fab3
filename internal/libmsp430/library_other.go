//go:build !darwin && !linux

package libmsp430

// Open always fails on platforms without a supported dynamic loader
func Open(path string) (*Library, error) {
	return nil, ErrUnsupported
}
