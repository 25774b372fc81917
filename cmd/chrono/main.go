package main

import (
	"os"

	"github.com/psantana5/chronograph/cmd/chrono/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
