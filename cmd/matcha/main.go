package main

import (
	"os"

	"github.com/matcha-labs/matcha-mcp/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
