package main

import (
	"os"

	"github.com/mfeld/lucid/cmd/lucid/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
