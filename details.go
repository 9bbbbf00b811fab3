package uart

import (
	"path/filepath"

	"go.bug.st/serial/enumerator"
)

// PortDetails holds USB metadata for a discovered UART
type PortDetails struct {
	Path         string
	Device       string // Resolved device node
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// detailedPortsList is replaced in tests
var detailedPortsList = enumerator.GetDetailedPortsList

// Describe returns USB metadata for each path, in order. Paths unknown to
// the system port enumerator only carry Path and Device.
func Describe(paths []string) ([]PortDetails, error) {
	ports, err := detailedPortsList()
	if err != nil {
		return nil, err
	}
	return describe(paths, ports), nil
}

func describe(paths []string, ports []*enumerator.PortDetails) []PortDetails {
	byDevice := make(map[string]*enumerator.PortDetails, len(ports))
	for _, port := range ports {
		byDevice[port.Name] = port
	}

	details := make([]PortDetails, 0, len(paths))
	for _, path := range paths {
		device := path
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			device = resolved
		}

		d := PortDetails{Path: path, Device: device}
		if port, ok := byDevice[device]; ok {
			d.IsUSB = port.IsUSB
			d.VID = port.VID
			d.PID = port.PID
			d.SerialNumber = port.SerialNumber
			d.Product = port.Product
		}
		details = append(details, d)
	}
	return details
}
