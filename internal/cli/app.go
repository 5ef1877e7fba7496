package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/lewisedginton/security_policy/pkg/config"
	"github.com/lewisedginton/security_policy/pkg/logger"
)

const (
	metadataLogger = "logger"
	metadataConfig = "config"
)

// NewApp builds the policyctl application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "policyctl",
		Usage:   "Inspect and validate the security policy registry",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Environment to resolve (development, staging, production)",
				EnvVars: []string{"APP_ENV"},
			},
			&cli.StringFlag{
				Name:    "config-file",
				Usage:   "Path to configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.StringFlag{
				Name:    "policy-file",
				Usage:   "YAML policy document to load instead of the built-in baseline",
				EnvVars: []string{"POLICY_FILE"},
			},
		},
		Before: before,
		Commands: []*cli.Command{
			SectionsCommand(),
			ShowCommand(),
			HeadersCommand(),
			ValidateCommand(),
			LimitsCommand(),
			CheckCommand(),
			MetricsCommand(),
		},
	}
}

// before loads configuration and stores a logger tagged with a fresh run id
// in the app metadata for commands to use.
func before(ctx *cli.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg := &config.PolicyConfig{}
	if err := config.GetConfig(cfg, ctx.String("config-file"), false); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if level := ctx.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if env := ctx.String("env"); env != "" {
		cfg.Environment = env
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewLogger(logger.Config{
		Level:   logger.ParseLevel(cfg.LogLevel),
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
		Output:  ctx.App.ErrWriter,
	}).WithFields(logger.RunIDField(uuid.NewString()))

	ctx.App.Metadata = map[string]interface{}{
		metadataLogger: log,
		metadataConfig: cfg,
	}
	return nil
}
