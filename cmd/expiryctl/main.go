package main

import (
	"os"

	"domain_expiry/cmd/expiryctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
