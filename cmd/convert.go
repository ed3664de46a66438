package cmd

import (
	"errors"
	"fmt"
	"os"

	"libdisk/config"
	"libdisk/disk"
	"libdisk/hfe"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "Convert a disk image to HFE",
	Long:  "Open SRC with whichever registered container recognizes it and write its tracks out as an HFE image at DST.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		srcPath, dstPath := args[0], args[1]

		encoding, err := hfe.ParseEncoding(config.Encoding)
		cobra.CheckErr(err)
		ifMode, err := hfe.ParseInterfaceMode(config.Interface)
		cobra.CheckErr(err)

		src, err := disk.Open(srcPath, disk.Opts{
			BitRateKbps: config.BitRateKbps,
			RPM:         config.RPM,
			Debug:       debugFlag,
		})
		cobra.CheckErr(err)
		defer src.Close()

		dst, err := disk.Create(dstPath, hfe.New(hfe.Opts{
			TrackEncoding: encoding,
			InterfaceMode: ifMode,
			BitRateKbps:   uint16(config.BitRateKbps),
		}), disk.Opts{
			Cylinders:   src.Cylinders(),
			BitRateKbps: config.BitRateKbps,
			RPM:         config.RPM,
			Debug:       debugFlag,
		})
		cobra.CheckErr(err)

		for trk := range src.Tracks {
			raw := src.ReadRaw(trk)
			err := dst.WriteRaw(trk, raw)
			raw.Release()
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to transfer track %d: %w", trk, err))
			}
		}

		if err := dst.Close(); err != nil {
			var fatal *disk.FatalIOError
			if errors.As(err, &fatal) {
				// The destination was truncated before writing began;
				// it is now incomplete and not worth keeping open.
				fmt.Fprintf(os.Stderr, "dskconv: %v (destination left truncated)\n", fatal)
				os.Exit(1)
			}
			cobra.CheckErr(err)
		}

		fmt.Printf("Converted %s (%s, %d cylinders) to %s\n",
			srcPath, src.ContainerName(), src.Cylinders(), dstPath)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
