// Package main provides the pkgmanifest CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/pkgmanifest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
