package main

import (
	"os"

	"github.com/leengari/tidytable/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
