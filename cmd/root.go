package cmd

import (
	"libdisk/config"

	"github.com/spf13/cobra"
)

var (
	profileFlag string
	debugFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "dskconv",
	Short: "A CLI program which converts floppy disk image files",
	Long:  "The dskconv tool converts floppy disk images between container formats used by preservation tools and hardware emulators.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(config.Initialize(profileFlag))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "drive/format profile to use (default from config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
