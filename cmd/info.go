/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	uart "github.com/allbin/msp-uart"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Explain how a serial device is classified",
	Long: `Show the USB signature of a serial device and whether it is treated
as an application UART or a debug-probe interface (Linux).

Examples:
  mspuart info /dev/serial/by-id/usb-Texas_Instruments_XDS110_03.00.00.05_Embed_with_CMSIS-DAP_M4321005-if00
  mspuart info /dev/ttyACM0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		s, _, e, err := setup()
		if err != nil {
			fatal("%v", err)
		}

		fmt.Printf("Device Information: %s\n\n", path)

		target, err := uart.ReadLink(path)
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("  Target:    %s\n", target)

		if details, err := uart.Describe([]string{path}); err == nil && details[0].IsUSB {
			d := details[0]
			fmt.Printf("  USB ID:    %s:%s\n", d.VID, d.PID)
			if d.SerialNumber != "" {
				fmt.Printf("  Serial:    %s\n", d.SerialNumber)
			}
			if d.Product != "" {
				fmt.Printf("  Product:   %s\n", d.Product)
			}
		}

		classifier := e.Classifier()
		if classifier == nil {
			fmt.Println("\nNo debug-probe filtering on this platform")
			return
		}

		props, err := uart.Udevadm{Path: s.Udevadm}.Query(cmd.Context(), path)
		if err != nil {
			fatal("%v", err)
		}
		sig := uart.SignatureFromProperties(props)
		fmt.Printf("  Signature: %s\n", sig)
		if !sig.Complete() {
			fmt.Println("             (incomplete, never treated as a debug probe)")
		}

		res, err := classifier.ClassifyDetailed(cmd.Context(), []string{path})
		if err != nil {
			fatal("%v", err)
		}

		fmt.Println()
		if len(res.Excluded) > 0 {
			fmt.Printf("Excluded: %s\n", describeExclusion(res.Excluded[0]))
			return
		}
		fmt.Printf("Application UART (%s)\n", filepath.Base(target))
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
