//go:build darwin || linux

package libmsp430

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Open loads the library at path and resolves its entry points
func Open(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	lib := &Library{path: path}
	symbols := []struct {
		name string
		fptr any
	}{
		{"MSP430_GetNumberOfUsbIfs", &lib.getNumberOfUsbIfs},
		{"MSP430_GetNameOfUsbIf", &lib.getNameOfUsbIf},
		{"MSP430_Error_Number", &lib.errorNumber},
	}

	for _, sym := range symbols {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil {
			_ = purego.Dlclose(handle)
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}

	return lib, nil
}
