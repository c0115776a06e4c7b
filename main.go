package main

import (
	"os"

	"github.com/recruitpipe/recruitpipe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
