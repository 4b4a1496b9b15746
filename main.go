package main

import (
	"os"

	"github.com/aaronzipp/twenty-questions/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
