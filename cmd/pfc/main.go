package main

import (
	"os"

	"github.com/pipeforge-labs/pipeforge-console/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
