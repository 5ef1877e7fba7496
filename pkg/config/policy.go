package config

import (
	"github.com/hashicorp/go-multierror"

	"github.com/lewisedginton/security_policy/pkg/policy"
)

// PolicyConfig is the configuration of a process hosting the security
// policy registry.
type PolicyConfig struct {
	CommonConfig `yaml:",inline"`

	// ServiceName is attached to every log line
	ServiceName string `env:"SERVICE_NAME" yaml:"service_name" default:"security-policy"`

	// Environment selects the overlay: development, staging or production
	Environment string `env:"APP_ENV" yaml:"environment" default:"production"`
}

// Validate implements the Validator interface
func (c PolicyConfig) Validate() error {
	var result *multierror.Error
	if err := c.CommonConfig.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := policy.ParseEnvironment(c.Environment); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// ParsedEnvironment returns the environment as a policy.Environment. It
// assumes Validate has passed.
func (c PolicyConfig) ParsedEnvironment() policy.Environment {
	env, err := policy.ParseEnvironment(c.Environment)
	if err != nil {
		return policy.Production
	}
	return env
}
