package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/stickyboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stickyboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stickyboard version %s\n", strings.TrimSpace(stickyboard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
