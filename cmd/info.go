package cmd

import (
	"fmt"

	"libdisk/config"
	"libdisk/disk"
	_ "libdisk/hfe" // register the HFE container

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Describe a disk image",
	Long:  "Probe the registered container formats and print the image geometry and per-track bit counts.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := disk.Open(args[0], disk.Opts{
			BitRateKbps: config.BitRateKbps,
			RPM:         config.RPM,
			Debug:       debugFlag,
		})
		cobra.CheckErr(err)
		defer d.Close()

		fmt.Printf("%s: %s container, %d cylinders, 2 sides\n",
			args[0], d.ContainerName(), d.Cylinders())
		for cyl := 0; cyl < d.Cylinders(); cyl++ {
			for side := 0; side < 2; side++ {
				rec := &d.Tracks[cyl*2+side]
				fmt.Printf("  cyl %2d side %d: %-11s %6d bits, %d bytes\n",
					cyl, side, rec.Type, rec.TotalBits, len(rec.Dat))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
