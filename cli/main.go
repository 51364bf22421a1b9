package main

import (
	"os"

	"github.com/krakenconfig/hocon/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
