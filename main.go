package main

import (
	"os"

	"github.com/vanvyapaar/vanvyapaar-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
