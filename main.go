package main

import (
	"os"

	"github.com/greengrid/simulator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
