package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/calorie-api/internal/config"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
	"github.com/phrazzld/calorie-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Running the root command without a
// subcommand serves the API.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "calorie-api",
		Short:         "Calorie and exercise tracking API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a config file (default: ./config.yaml when present)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, configPath)
		},
	}
	root.Args = cobra.NoArgs
	root.RunE = serve.RunE

	migrate := &cobra.Command{
		Use:       "migrate <" + strings.Join(postgres.MigrationCommands, "|") + ">",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, configPath, args[0])
		},
	}

	root.AddCommand(serve, migrate)
	return root
}

// bootstrap loads configuration and installs the default logger.
func bootstrap(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("sanitize_input", cfg.Security.SanitizeInput))
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	return app.Run(ctx)
}

func runMigrate(cmd *cobra.Command, configPath, command string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}()

	log.Info("running migrations", slog.String("command", command))
	return postgres.Migrate(ctx, db, log, command)
}
