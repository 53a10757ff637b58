package main

import (
	"fmt"
	"os"

	"github.com/askk-pro/karyayana/internal/cli"
	"github.com/askk-pro/karyayana/internal/config"
	"github.com/askk-pro/karyayana/internal/logging"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logging.SetVerbose(cfg.Application.Verbose)

	root := cli.NewRootCommand(cfg)
	defer root.Close()

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
