package main

import (
	"context"
	"log/slog"
	"os"

	"sponsorship-api/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies the SQL migrations in migrations/ to the configured database
// using the atlas CLI. Intended for deploy pipelines and local setup:
//
//	go run ./cmd/migrate
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS("migrations")),
	)
	if err != nil {
		slog.Error("failed to prepare migration workdir", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := workdir.Close(); err != nil {
			slog.Warn("failed to clean up migration workdir", "error", err)
		}
	}()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	result, err := client.MigrateApply(context.Background(), &atlasexec.MigrateApplyParams{
		URL: cfg.DB.BuildDSN(),
	})
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied",
		"applied", len(result.Applied),
		"current", result.Current,
		"target", result.Target)
}
