package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/lix/internal/services"
	"github.com/desertthunder/lix/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := ""
	if _, err := os.Stat("config.toml"); err == nil {
		configPath = "config.toml"
	}

	config, err := shared.ResolveConfig(configPath)
	if err != nil {
		logger.Warnf("failed to load config, using defaults: %v", err)
		config = shared.DefaultConfig()
	}

	linkedin := services.NewLinkedInService(config.Credentials.LinkedIn.Map())

	var generator services.Generator
	if config.Credentials.Gemini.APIKey != "" {
		if svc, err := services.NewGeminiService(config.Credentials.Gemini.Map()); err == nil {
			generator = svc
		} else {
			logger.Warnf("gemini unavailable, drafting disabled: %v", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Service:    linkedin,
		Generator:  generator,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "lix",
		Usage:    "Manage your LinkedIn feed from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
