package uart

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func makeDevDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
	return dir
}

func TestListDarwin(t *testing.T) {
	dir := makeDevDir(t, "cu.usbmodem14103", "cu.usbmodem14101", "cu.usbmodem14102")

	got, err := ListUARTs(context.Background(), WithGOOS("darwin"), WithDeviceDir(dir))
	if err != nil {
		t.Fatalf("ListUARTs failed: %v", err)
	}

	expected := []string{filepath.Join(dir, "cu.usbmodem14103")}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ListUARTs() = %v, expected %v", got, expected)
	}
}

func TestListDarwinFiltering(t *testing.T) {
	dir := makeDevDir(t,
		"cu.usbmodem0000000000003", // trailing "03"
		"cu.usbmodemM43210051",
		"cu.usbmodem14203",
		"cu.usbmodem14103",
		"tty.usbmodem14103", // callout devices only
		"cu.Bluetooth-Incoming-Port",
		"cu.usbserial-03",
		"console",
	)

	got, err := ListUARTs(context.Background(), WithGOOS("darwin"), WithDeviceDir(dir))
	if err != nil {
		t.Fatalf("ListUARTs failed: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "cu.usbmodem0000000000003"),
		filepath.Join(dir, "cu.usbmodem14103"),
		filepath.Join(dir, "cu.usbmodem14203"),
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ListUARTs() = %v, expected %v", got, expected)
	}
}

func TestListDarwinSkipsClassifier(t *testing.T) {
	dir := makeDevDir(t, "cu.usbmodem14103")
	lister := &fakeLister{}
	querier := &fakeQuerier{}
	c := NewClassifier(zerolog.Nop(), WithInterfaceLister(lister), WithPropertyQuerier(querier))

	e, err := NewEnumerator(WithGOOS("darwin"), WithDeviceDir(dir), WithClassifier(c))
	if err != nil {
		t.Fatalf("NewEnumerator failed: %v", err)
	}
	res, err := e.ListDetailed(context.Background())
	if err != nil {
		t.Fatalf("ListDetailed failed: %v", err)
	}
	if len(res.UARTs) != 1 || len(res.Excluded) != 0 {
		t.Errorf("Unexpected result %+v", res)
	}
	if lister.calls != 0 || len(querier.queried) != 0 {
		t.Errorf("Classifier must not run on darwin")
	}
}

func TestListMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := ListUARTs(context.Background(), WithGOOS("darwin"), WithDeviceDir(missing))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("darwin: expected fs.ErrNotExist, got %v", err)
	}

	c := NewClassifier(zerolog.Nop(), WithInterfaceLister(nil), WithPropertyQuerier(&fakeQuerier{}))
	_, err = ListUARTs(context.Background(), WithGOOS("linux"), WithByIDDir(missing), WithClassifier(c))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("linux: expected fs.ErrNotExist, got %v", err)
	}
}

func TestListUnsupportedPlatform(t *testing.T) {
	for _, goos := range []string{"windows", "freebsd", "plan9"} {
		_, err := ListUARTs(context.Background(), WithGOOS(goos))
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("%s: expected ErrUnsupportedPlatform, got %v", goos, err)
		}
	}
}

func TestCandidatesSkipsHiddenEntries(t *testing.T) {
	byID := makeByID(t, map[string]string{
		"usb-Board-if00": "ttyACM0",
		".udev-tmp":      "ttyACM9",
	})
	e, err := NewEnumerator(WithGOOS("linux"), WithByIDDir(byID),
		WithClassifier(NewClassifier(zerolog.Nop(), WithInterfaceLister(nil))))
	if err != nil {
		t.Fatalf("NewEnumerator failed: %v", err)
	}

	got, err := e.Candidates()
	if err != nil {
		t.Fatalf("Candidates failed: %v", err)
	}
	expected := []string{filepath.Join(byID, "usb-Board-if00")}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Candidates() = %v, expected %v", got, expected)
	}
}

func TestNewEnumeratorBuildsLinuxClassifier(t *testing.T) {
	e, err := NewEnumerator(WithGOOS("linux"), WithUdevadm("/sbin/udevadm"), WithLibraryName(""), WithLibraryGlobs())
	if err != nil {
		t.Fatalf("NewEnumerator failed: %v", err)
	}
	if e.classifier == nil {
		t.Fatal("Expected a classifier on linux")
	}
	if u, ok := e.classifier.properties.(Udevadm); !ok || u.Path != "/sbin/udevadm" {
		t.Errorf("Unexpected property querier %#v", e.classifier.properties)
	}
}

// TestListUARTsIntegration is an integration test that requires actual system
func TestListUARTsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	uarts, err := ListUARTs(context.Background())
	if errors.Is(err, ErrUnsupportedPlatform) || errors.Is(err, fs.ErrNotExist) {
		t.Skipf("No serial devices available: %v", err)
	}
	if err != nil {
		t.Skipf("Discovery unavailable on this host: %v", err)
	}

	t.Logf("Found %d UARTs:", len(uarts))
	for i, path := range uarts {
		t.Logf("  %d. %s", i+1, path)
	}
}
