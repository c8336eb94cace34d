package main

import (
	"fmt"
	"os"

	"options-analyzer/internal/cli"
	"options-analyzer/internal/config"
	"options-analyzer/internal/logging"
	"options-analyzer/internal/marketdata"
)

func main() {
	configDir := ""
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configDir = os.Args[i+1]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging)

	// Quote lookup is an injected collaborator; the static provider keeps
	// the CLI usable offline until a live provider is wired in.
	quotes := marketdata.NewStaticProvider()

	rootCmd := cli.NewRootCmd(cfg, logger, quotes)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
