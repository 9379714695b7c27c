package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"GophMart/internal/cli/commands"
	"GophMart/internal/config"
)

// заполняются через -ldflags "-X main.version=... -X main.buildDate=..."
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	commands.Version, commands.BuildDate = version, buildDate

	// env + flags; подкоманда и её аргументы остаются в flag.Args()
	cfg := config.NewConfig()

	args := flag.Args()
	if cfg.Version {
		args = []string{"version"}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Dispatch(ctx, cfg, args)
	cancel()
	os.Exit(code)
}
