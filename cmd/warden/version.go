package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wardenbot/warden"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of warden",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("warden version %s\n", warden.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
