package main

import (
	"log/slog"
	"os"

	"github.com/priceflex/haml/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		slog.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}
