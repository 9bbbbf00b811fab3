/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	uart "github.com/allbin/msp-uart"
	"github.com/allbin/msp-uart/internal/tui/styles"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List MSP430 UARTs",
	Long: `List the application UARTs of attached MSP430 boards, one per line.

On Linux every link under /dev/serial/by-id is checked and debug-probe
interfaces are left out. Use --all to show them along with the reason
they were excluded.

Examples:
  mspuart list
  mspuart list --all --table
  mspuart list --details`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, logger, e, err := setup()
		if err != nil {
			fatal("%v", err)
		}

		res, err := discover(cmd, s, e, logger)
		if err != nil {
			fatal("%v", err)
		}

		showAll, _ := cmd.Flags().GetBool("all")
		tableFormat, _ := cmd.Flags().GetBool("table")
		details, _ := cmd.Flags().GetBool("details")

		if !showAll {
			res.Excluded = nil
		}

		if len(res.UARTs) == 0 && len(res.Excluded) == 0 {
			fmt.Println("No devices found")
			return
		}

		rules := s.baudRules()
		switch {
		case details:
			renderDetails(res.UARTs)
		case tableFormat:
			renderTable(res, rules.Select)
		default:
			renderSimple(res)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("all", "a", false, "Also show excluded debug-probe interfaces")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	listCmd.Flags().BoolP("details", "d", false, "Show USB vendor, product and serial number")
}

// renderSimple renders the device list in simple text format
func renderSimple(res uart.Result) {
	for _, path := range res.UARTs {
		fmt.Println(path)
	}
	for _, ex := range res.Excluded {
		fmt.Printf("%s\t(excluded: %s)\n", ex.Path, describeExclusion(ex))
	}
}

// renderTable renders the device list in a styled static table format
func renderTable(res uart.Result, baud func(string) int) {
	fmt.Printf("Found %d UART(s):\n\n", len(res.UARTs))

	deviceWidth := 12
	baudWidth := 8
	pathWidth := 0
	for _, path := range res.UARTs {
		pathWidth = max(pathWidth, len(filepath.Base(path)))
	}
	for _, ex := range res.Excluded {
		pathWidth = max(pathWidth, len(filepath.Base(ex.Path)))
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		pathWidth, "Name",
		deviceWidth, "Device",
		baudWidth, "Baud",
		"Status")
	fmt.Println(styles.HeaderStyle.Render(header))

	for _, path := range res.UARTs {
		target, err := uart.ReadLink(path)
		if err != nil {
			target = "?"
		}
		fmt.Printf("%-*s %-*s %s %s\n",
			pathWidth, filepath.Base(path),
			deviceWidth, filepath.Base(target),
			styles.BaudStyle.Render(fmt.Sprintf("%-*d", baudWidth, baud(path))),
			"UART")
	}

	for _, ex := range res.Excluded {
		row := fmt.Sprintf("%-*s %-*s %-*s",
			pathWidth, filepath.Base(ex.Path),
			deviceWidth, filepath.Base(ex.Target),
			baudWidth, "-")
		fmt.Printf("%s %s\n", styles.ExcludedStyle.Render(row), styles.ReasonStyle.Render(describeExclusion(ex)))
	}
}

// renderDetails renders USB metadata for each UART
func renderDetails(paths []string) {
	details, err := uart.Describe(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: USB details unavailable: %v\n", err)
		for _, path := range paths {
			fmt.Println(path)
		}
		return
	}

	for _, d := range details {
		fmt.Println(d.Path)
		if d.Device != d.Path {
			fmt.Printf("   Device     %s\n", d.Device)
		}
		if d.IsUSB {
			fmt.Printf("   USB ID     %s:%s\n", d.VID, d.PID)
			fmt.Printf("   USB serial %s\n", d.SerialNumber)
			if d.Product != "" {
				fmt.Printf("   Product    %s\n", d.Product)
			}
		}
	}
}

func describeExclusion(ex uart.Exclusion) string {
	if ex.Reason == uart.ReasonProbeSignature {
		return fmt.Sprintf("%s %s", ex.Family, ex.Signature)
	}
	return fmt.Sprintf("%s %s", ex.Reason, filepath.Base(ex.Target))
}
