package commands

import (
	"GophMart/internal/config"
	"context"
	"fmt"
)

// Сборочные метаданные, выставляются из main через ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

type versionCmd struct{}

func (versionCmd) Name() string        { return "version" }
func (versionCmd) Description() string { return "Показать версию клиента" }
func (versionCmd) Usage() string       { return "version" }

func (versionCmd) Run(_ context.Context, _ *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	fmt.Fprintf(Out, "GophMart CLI\nVersion: %s\nBuild date: %s\n", Version, BuildDate)
	return nil
}

func init() { RegisterCmd(versionCmd{}) }
