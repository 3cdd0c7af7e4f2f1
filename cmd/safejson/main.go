package main

import (
	"os"

	"github.com/GriffinCanCode/safejson/cmd/safejson/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
