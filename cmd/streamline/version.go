package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the streamline version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "streamline version %s\n", Version)
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("streamline version {{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
}
