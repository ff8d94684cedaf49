package main

import (
	"os"

	"github.com/calc-sim/fxpad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
