package main

import (
	"os"

	"github.com/abhisek/csatquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
