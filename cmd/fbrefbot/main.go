package main

import (
	"os"

	"github.com/Vina-13dev/FbrefBoT/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
