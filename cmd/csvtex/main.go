package main

import (
	"os"

	"github.com/salmonumbrella/csvtex/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
