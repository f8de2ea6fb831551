package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cardano-preview/walletdemo/cli/walletdemo/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.New().Execute(ctx); err != nil {
		os.Exit(1)
	}
}
