package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/commands"
)

func main() {
	if err := commands.Root().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
