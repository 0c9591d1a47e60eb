package main

import (
	"os"

	"github.com/sant0-9/prompto/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
