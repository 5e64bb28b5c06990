package main

import (
	"os"

	"github.com/taskflow-dev/taskflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
