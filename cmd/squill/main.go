// Package main provides the squill interactive SQL client.
package main

import (
	"os"

	"github.com/leapstack-labs/squill/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
