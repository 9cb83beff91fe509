package main

import (
	"fmt"

	"github.com/phanxgames/placard"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of placard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("placard version %s\n", placard.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
