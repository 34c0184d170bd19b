// Package main is the entry point for the sqlsplit CLI binary.
package main

import (
	"os"

	cli "sqlsplit/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
