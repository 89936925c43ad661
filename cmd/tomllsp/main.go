package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aledsdavies/tomlfront/internal/lspserver"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tomllsp",
	Short: "Start a Language Server Protocol server for TOML",
	Long: `tomllsp republishes this repository's syntax diagnostics over LSP via
textDocument/didOpen and textDocument/didChange. It communicates over
stdin/stdout and is meant to be started by an editor, not run by hand.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	server := lspserver.NewServer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return server.Run(ctx)
}
