package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/lewisedginton/security_policy/pkg/config"
	"github.com/lewisedginton/security_policy/pkg/logger"
	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

// getLogger retrieves the logger from the CLI context metadata
func getLogger(ctx *cli.Context) logger.Logger {
	if ctx.App.Metadata != nil {
		if log, ok := ctx.App.Metadata[metadataLogger].(logger.Logger); ok {
			return log
		}
	}

	// Fallback to default logger if not found
	return logger.NewLogger(logger.Config{
		Level:   logger.InfoLevel,
		Format:  "json",
		Service: "policyctl",
	})
}

// getConfig retrieves the loaded configuration, falling back to defaults.
func getConfig(ctx *cli.Context) *config.PolicyConfig {
	if ctx.App.Metadata != nil {
		if cfg, ok := ctx.App.Metadata[metadataConfig].(*config.PolicyConfig); ok {
			return cfg
		}
	}
	return &config.PolicyConfig{Environment: string(policy.Production)}
}

// loadPolicy returns the policy named by --policy-file, or the baseline.
func loadPolicy(ctx *cli.Context) (*policy.Policy, error) {
	path := ctx.String("policy-file")
	if path == "" {
		return policy.Baseline(), nil
	}
	getLogger(ctx).Debug("Loading policy file", logger.StringField("path", path))
	return policy.LoadFile(path)
}

// getRegistry builds the registry and resolves it for the configured
// environment.
func getRegistry(ctx *cli.Context) (*registry.Registry, error) {
	log := getLogger(ctx)
	p, err := loadPolicy(ctx)
	if err != nil {
		return nil, err
	}
	base, err := registry.New(p, registry.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return registry.Resolve(base, getConfig(ctx).Environment)
}

// writeFormatted encodes v as yaml or json.
func writeFormatted(w io.Writer, format string, v any) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("unsupported output format %q, expected yaml or json", format)
}
