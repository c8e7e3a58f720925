package main

import (
	"os"

	"github.com/salesdojo/callcoach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
