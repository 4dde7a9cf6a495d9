package main

import (
	"os"

	"github.com/abhisek/examdraft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
