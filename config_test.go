package uart

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/allbin/msp-uart/internal/libmsp430"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.GOOS != runtime.GOOS {
		t.Errorf("Expected GOOS %s, got %s", runtime.GOOS, config.GOOS)
	}

	if config.DeviceDir != "/dev" {
		t.Errorf("Expected DeviceDir /dev, got %s", config.DeviceDir)
	}

	if config.ModemPrefix != "cu.usbmodem" {
		t.Errorf("Expected ModemPrefix cu.usbmodem, got %s", config.ModemPrefix)
	}

	if config.UARTSuffix != "03" {
		t.Errorf("Expected UARTSuffix 03, got %s", config.UARTSuffix)
	}

	if config.ByIDDir != "/dev/serial/by-id" {
		t.Errorf("Expected ByIDDir /dev/serial/by-id, got %s", config.ByIDDir)
	}

	if config.LibraryName != libmsp430.DefaultName {
		t.Errorf("Expected LibraryName %s, got %s", libmsp430.DefaultName, config.LibraryName)
	}

	if config.Udevadm != "udevadm" {
		t.Errorf("Expected Udevadm udevadm, got %s", config.Udevadm)
	}
}

func TestFunctionalOptions(t *testing.T) {
	config := DefaultConfig()

	opts := []Option{
		WithGOOS("darwin"),
		WithDeviceDir("/tmp/dev"),
		WithModemPrefix("tty.usbmodem"),
		WithUARTSuffix("1"),
		WithByIDDir("/tmp/by-id"),
		WithLibraryName(""),
		WithLibraryGlobs("/opt/ti/*/libmsp430.so"),
		WithUdevadm("/usr/bin/udevadm"),
	}
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			t.Fatalf("Option failed: %v", err)
		}
	}

	if config.GOOS != "darwin" {
		t.Errorf("Expected GOOS darwin, got %s", config.GOOS)
	}
	if config.DeviceDir != "/tmp/dev" {
		t.Errorf("Expected DeviceDir /tmp/dev, got %s", config.DeviceDir)
	}
	if config.ModemPrefix != "tty.usbmodem" {
		t.Errorf("Expected ModemPrefix tty.usbmodem, got %s", config.ModemPrefix)
	}
	if config.UARTSuffix != "1" {
		t.Errorf("Expected UARTSuffix 1, got %s", config.UARTSuffix)
	}
	if config.ByIDDir != "/tmp/by-id" {
		t.Errorf("Expected ByIDDir /tmp/by-id, got %s", config.ByIDDir)
	}
	if config.LibraryName != "" {
		t.Errorf("Expected empty LibraryName, got %s", config.LibraryName)
	}
	if !reflect.DeepEqual(config.LibraryGlobs, []string{"/opt/ti/*/libmsp430.so"}) {
		t.Errorf("Unexpected LibraryGlobs %v", config.LibraryGlobs)
	}
	if config.Udevadm != "/usr/bin/udevadm" {
		t.Errorf("Expected Udevadm /usr/bin/udevadm, got %s", config.Udevadm)
	}
}

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty GOOS", WithGOOS("")},
		{"empty device dir", WithDeviceDir("")},
		{"empty modem prefix", WithModemPrefix("")},
		{"modem prefix with separator", WithModemPrefix("usb/modem")},
		{"empty by-id dir", WithByIDDir("")},
		{"empty udevadm", WithUdevadm("")},
		{"nil classifier", WithClassifier(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			if err := tt.opt(&config); err != ErrInvalidConfig {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewEnumeratorInvalidOption(t *testing.T) {
	if _, err := NewEnumerator(WithGOOS("")); err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
