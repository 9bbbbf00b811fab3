// Package uart discovers the application UARTs of MSP430 development boards
// and tells them apart from the debug-probe interfaces sharing the same USB
// connector.
//
// Discovery is supported on macOS and Linux. Other platforms return
// ErrUnsupportedPlatform.
//
// # Basic Usage
//
// List the UARTs of every attached board:
//
//	uarts, err := uart.ListUARTs(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, path := range uarts {
//	    fmt.Println(path)
//	}
//
// # Configuration Options
//
// Use functional options to change directories, naming conventions or the
// location of TI's debug library:
//
//	e, err := uart.NewEnumerator(
//	    uart.WithByIDDir("/dev/serial/by-id"),
//	    uart.WithLibraryGlobs("/opt/ti/*/ccs/ccs_base/DebugServer/drivers/libmsp430.so"),
//	    uart.WithLogger(logger),
//	)
//
// # macOS
//
// Boards show up as /dev/cu.usbmodem* with one device per USB interface.
// The application UART is the third interface, so only names ending in "03"
// are returned. No further filtering is applied.
//
// # Linux
//
// Every link under /dev/serial/by-id is a candidate. A candidate is dropped
// when either
//
//   - libmsp430 (when installed) reports its target as one of the probe's
//     own USB interfaces, or
//   - its udev vendor id, model id and interface number match a known
//     XDS110 or CP210X function (see XDS110Signatures and CP210XSignatures).
//
// Candidates missing any of those udev properties are kept.
//
// Use a Classifier directly to classify arbitrary paths or to inspect why
// a candidate was dropped:
//
//	c := uart.NewClassifier(logger)
//	res, err := c.ClassifyDetailed(ctx, paths)
//	for _, ex := range res.Excluded {
//	    fmt.Printf("%s: %s %s\n", ex.Path, ex.Reason, ex.Family)
//	}
//
// # Error Handling
//
// An unreadable device directory, a failed symlink lookup or a failed
// udevadm run aborts discovery and is returned to the caller. A missing or
// failing libmsp430 is only logged.
//
//	if errors.Is(err, uart.ErrUnsupportedPlatform) {
//	    // Windows and others
//	}
package uart
