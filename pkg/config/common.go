package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// CommonConfig holds logging configuration shared by every binary
type CommonConfig struct {
	// LogLevel specifies the minimum log level to output
	// Valid values: debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL" yaml:"log_level" default:"info"`

	// LogFormat selects the logrus formatter: json or text
	LogFormat string `env:"LOG_FORMAT" yaml:"log_format" default:"json"`
}

// Validate checks CommonConfig for valid log level and format
func (c CommonConfig) Validate() error {
	var result *multierror.Error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("log_level must be one of [debug, info, warn, error], got %q", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		result = multierror.Append(result, fmt.Errorf("log_format must be one of [json, text], got %q", c.LogFormat))
	}

	return result.ErrorOrNil()
}
