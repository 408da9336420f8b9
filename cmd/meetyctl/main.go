package main

import (
	"context"
	"fmt"
	"os"

	"meety/cmd/internal/app"
	"meety/cmd/internal/cli"
	"meety/cmd/internal/config"
	"meety/cmd/internal/output"
)

func main() {
	if err := run(); err != nil {
		output.NewFormatter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()
	cfg, err := config.LoadWithFile(config.DefaultFilePath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}

	deps := &cli.Dependencies{
		Meetings: application.Meetings,
		Config:   cfg,
		Out:      os.Stdout,
	}
	return cli.NewRootCmd(deps).ExecuteContext(ctx)
}
