package libmsp430

import "unsafe"

// maxNameLen bounds the scan for the terminating NUL
const maxNameLen = 4096

// asciiString copies a NUL-terminated C string owned by the library
func asciiString(p *byte) (string, error) {
	if p == nil {
		return "", nil
	}

	buf := make([]byte, 0, 32)
	for i := 0; i < maxNameLen; i++ {
		c := *(*byte)(unsafe.Add(unsafe.Pointer(p), i))
		if c == 0 {
			break
		}
		if c > 0x7f {
			return "", ErrNotASCII
		}
		buf = append(buf, c)
	}
	return string(buf), nil
}
