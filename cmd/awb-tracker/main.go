// Package main is the entry point for awb-tracker.
package main

import (
	"os"

	"github.com/donaldgifford/awb-tracker/cmd/awb-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
