// Package config loads process configuration from an optional YAML file,
// an optional .env file and environment variables, driven by struct tags:
//
//	env:"NAME"       environment variable that overrides the field
//	yaml:"name"      key in the YAML file
//	default:"value"  applied when the field is still zero
//	required:"true"  error when the field is still zero and has no default
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Validator interface allows config structs to implement custom validation logic.
// If a config struct implements this interface, validation will be automatically
// called after loading configuration from files and environment variables.
type Validator interface {
	Validate() error
}

// setField converts raw according to the field's type and stores it.
// Slices of strings are comma separated.
func setField(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("failed to convert %s to duration: %v", raw, err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to convert %s to int: %v", raw, err)
		}
		field.SetInt(v)
	case reflect.Float64, reflect.Float32:
		v, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("failed to convert %s to %s: %v", raw, field.Kind(), err)
		}
		field.SetFloat(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("failed to convert %s to bool: %v", raw, err)
		}
		field.SetBool(v)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		values := strings.Split(raw, ",")
		slice := reflect.MakeSlice(field.Type(), len(values), len(values))
		for i, v := range values {
			slice.Index(i).SetString(strings.TrimSpace(v))
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}

// fieldKey identifies a field by struct type and field name to avoid
// collisions between embedded structs.
func fieldKey(t reflect.Type, f reflect.StructField) string {
	return t.Name() + "." + f.Name
}

// applyEnv sets every env-tagged field whose variable is non-empty and
// returns the set of fields it touched.
func applyEnv(val reflect.Value, typeOfT reflect.Type, setFields map[string]bool) error {
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typeOfT.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field, fieldType.Type, setFields); err != nil {
				return err
			}
			continue
		}

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			continue
		}
		envVal := os.Getenv(tag)
		if envVal == "" {
			continue
		}
		if err := setField(field, envVal); err != nil {
			return fmt.Errorf("env %s: %w", tag, err)
		}
		setFields[fieldKey(typeOfT, fieldType)] = true
	}
	return nil
}

// applyDefaults fills zero fields from their default tag and reports
// missing required fields. All problems are collected.
func applyDefaults(val reflect.Value, typeOfT reflect.Type, setFields map[string]bool) error {
	var result *multierror.Error
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typeOfT.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyDefaults(field, fieldType.Type, setFields); err != nil {
				result = multierror.Append(result, err)
			}
			continue
		}

		if !field.IsZero() || setFields[fieldKey(typeOfT, fieldType)] {
			continue
		}

		defaultTag, hasDefault := fieldType.Tag.Lookup("default")
		if hasDefault && defaultTag != "" {
			if err := setField(field, defaultTag); err != nil {
				result = multierror.Append(result, fmt.Errorf("default for %s: %w", fieldType.Name, err))
			}
			continue
		}

		required := strings.ToLower(fieldType.Tag.Get("required"))
		if required == "true" || required == "1" {
			result = multierror.Append(result, fmt.Errorf("required field env:%s / yaml:%s is missing",
				fieldType.Tag.Get("env"), fieldType.Tag.Get("yaml")))
		}
	}
	return result.ErrorOrNil()
}

func validate[T any](dest *T) error {
	if v, ok := any(*dest).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// GetConfigFromEnvVars loads configuration from environment variables only.
// It processes struct tags: env, default, required.
// Example usage:
//
//	var cfg PolicyConfig
//	err := GetConfigFromEnvVars(&cfg)
func GetConfigFromEnvVars[T any](dest *T) error {
	val := reflect.ValueOf(dest).Elem()
	typeOfT := val.Type()

	setFields := make(map[string]bool)
	if err := applyEnv(val, typeOfT, setFields); err != nil {
		return err
	}
	if err := applyDefaults(val, typeOfT, setFields); err != nil {
		var zero T
		*dest = zero
		return err
	}
	return validate(dest)
}

// GetConfig loads configuration from YAML file first, then overlays environment variables.
// ${VAR} references inside the file are expanded from the environment before parsing.
// If filepath is empty, only environment variables are used.
// If allowFileErrors is true, file read/parse errors fallback to env vars only.
func GetConfig[T any](dest *T, filepath string, allowFileErrors bool) error {
	if filepath == "" {
		return GetConfigFromEnvVars(dest)
	}
	data, err := os.ReadFile(filepath)
	if err != nil {
		if allowFileErrors {
			return GetConfigFromEnvVars(dest)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), dest); err != nil {
		if allowFileErrors {
			return GetConfigFromEnvVars(dest)
		}
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return GetConfigFromEnvVars(dest)
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already present in the environment. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}
