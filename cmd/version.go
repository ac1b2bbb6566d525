package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the client version, stamped at release time.
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vanvyapaar v%s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
