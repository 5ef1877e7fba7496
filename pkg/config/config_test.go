package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisedginton/security_policy/pkg/policy"
)

type testConfig struct {
	PolicyConfig `yaml:",inline"`

	APIKey   string        `env:"API_KEY" yaml:"api_key" required:"true"`
	Debug    bool          `env:"DEBUG" yaml:"debug" default:"false"`
	Ratio    float64       `env:"RATIO" yaml:"ratio" default:"0.5"`
	Timeout  time.Duration `env:"TIMEOUT" yaml:"timeout" default:"30s"`
	Features []string      `env:"FEATURES" yaml:"features"`
}

func (c testConfig) Validate() error {
	return c.PolicyConfig.Validate()
}

// clearEnv blanks every variable the test configs read.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "SERVICE_NAME", "APP_ENV", "API_KEY", "DEBUG", "RATIO", "TIMEOUT", "FEATURES"} {
		t.Setenv(k, "")
	}
}

func TestGetConfigFromEnvVars(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
		want    testConfig
		wantErr bool
	}{
		{
			name:    "All defaults, except required field",
			envVars: map[string]string{"API_KEY": "test-key"},
			want: testConfig{
				PolicyConfig: PolicyConfig{
					CommonConfig: CommonConfig{LogLevel: "info", LogFormat: "json"},
					ServiceName:  "security-policy",
					Environment:  "production",
				},
				APIKey:  "test-key",
				Ratio:   0.5,
				Timeout: 30 * time.Second,
			},
		},
		{
			name: "Override with environment variables",
			envVars: map[string]string{
				"LOG_LEVEL":  "debug",
				"LOG_FORMAT": "text",
				"APP_ENV":    "staging",
				"API_KEY":    "env-key",
				"DEBUG":      "true",
				"RATIO":      "0.25",
				"TIMEOUT":    "1m",
				"FEATURES":   "feature1, feature2,feature3",
			},
			want: testConfig{
				PolicyConfig: PolicyConfig{
					CommonConfig: CommonConfig{LogLevel: "debug", LogFormat: "text"},
					ServiceName:  "security-policy",
					Environment:  "staging",
				},
				APIKey:   "env-key",
				Debug:    true,
				Ratio:    0.25,
				Timeout:  time.Minute,
				Features: []string{"feature1", "feature2", "feature3"},
			},
		},
		{
			name:    "Missing required field",
			envVars: map[string]string{},
			wantErr: true,
		},
		{
			name:    "Unknown environment",
			envVars: map[string]string{"API_KEY": "k", "APP_ENV": "qa"},
			wantErr: true,
		},
		{
			name:    "Invalid log format",
			envVars: map[string]string{"API_KEY": "k", "LOG_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name:    "Unparseable bool",
			envVars: map[string]string{"API_KEY": "k", "DEBUG": "perhaps"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.envVars {
				t.Setenv(k, v)
			}

			var got testConfig
			err := GetConfigFromEnvVars(&got)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetConfigWithEnvInterpolation(t *testing.T) {
	clearEnv(t)
	yamlContent := `
log_level: warn
environment: development
api_key: ${TEST_API_KEY}
features:
  - ${TEST_FEATURE_1}
  - feature2
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	t.Setenv("TEST_API_KEY", "secret-from-env")
	t.Setenv("TEST_FEATURE_1", "dynamic-feature")

	var cfg testConfig
	require.NoError(t, GetConfig(&cfg, path, false))

	assert.Equal(t, "secret-from-env", cfg.APIKey)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, policy.Development, cfg.ParsedEnvironment())
	assert.Equal(t, []string{"dynamic-feature", "feature2"}, cfg.Features)
}

func TestGetConfigEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: development\napi_key: file\n"), 0o600))
	t.Setenv("APP_ENV", "staging")

	var cfg testConfig
	require.NoError(t, GetConfig(&cfg, path, false))
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "file", cfg.APIKey)
}

func TestGetConfigMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "k")
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	var strict testConfig
	assert.Error(t, GetConfig(&strict, missing, false))

	var lenient testConfig
	require.NoError(t, GetConfig(&lenient, missing, true))
	assert.Equal(t, "k", lenient.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_ONLY_VAR=from-file\n"), 0o600))
	t.Setenv("DOTENV_ONLY_VAR", "")
	require.NoError(t, os.Unsetenv("DOTENV_ONLY_VAR"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("DOTENV_ONLY_VAR"))
}

func TestCommonConfigValidation(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel string
		format   string
		wantErr  bool
	}{
		{"Valid debug", "debug", "json", false},
		{"Valid info", "info", "text", false},
		{"Valid warn", "warn", "json", false},
		{"Valid error", "error", "json", false},
		{"Case insensitive", "DEBUG", "JSON", false},
		{"Invalid level", "invalid", "json", true},
		{"Invalid format", "info", "logfmt", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := CommonConfig{LogLevel: tc.logLevel, LogFormat: tc.format}
			err := cfg.Validate()

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
