// Package main provides the CLI entry point for sqlmark.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlmark/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
