package main

import (
	"os"

	"sessionbridge/cmd/sessionbridge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
