// Package main is the entry point for the officebase CLI.
package main

import (
	"fmt"
	"os"

	"github.com/didzisbondars-dot/officebase/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
