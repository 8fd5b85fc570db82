// Package main is the entry point for the rentsplit CLI.
package main

import (
	"os"

	"rentsplit/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
