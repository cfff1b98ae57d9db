package main

import (
	"os"

	"github.com/randomtoy/volva-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
