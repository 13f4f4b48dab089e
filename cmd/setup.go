package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/lix/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter config file from the embedded example.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Config file created at %s\n\n", configPath)
	r.writePlain("Next steps:\n")
	r.writePlain("1. Add your LinkedIn client_id and client_secret under [credentials.linkedin]\n")
	r.writePlain("2. Optionally add a Gemini api_key under [credentials.gemini] to enable drafting\n")
	r.writePlain("3. Run 'lix setup database' to initialize the token store\n")

	return nil
}

// SetupDatabase initializes the token store database and runs migrations,
// creating the config file from the embedded template when it is missing.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			configPath = ""
		} else {
			r.writePlain("✓ Config file created at %s\n", configPath)
		}
	}

	config, err := shared.ResolveConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		config = shared.DefaultConfig()
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	r.writePlain("✓ Database ready at %s\n", config.Database.Path)
	r.writePlain("Run 'lix auth login' to store your first session.\n")

	return nil
}
