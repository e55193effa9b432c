package main

import (
	"os"

	"github.com/cramr/cramr-backend/cmd/api/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
