// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the explorer configuration from a YAML file,
// DOCEXPLORER_* environment variables, and defaults, then validates it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-explorer/pkg/types"
)

const (
	// Name is the config file base name searched for in "." and
	// ~/.config/docexplorer/.
	Name = "docexplorer"

	// EnvPrefix prefixes environment overrides: DOCEXPLORER_API_BASE_URL
	// sets api.base_url.
	EnvPrefix = "DOCEXPLORER"

	DefaultBaseURL   = "http://localhost:5000"
	DefaultUserAgent = "docexplorer/0.1"
	DefaultAddr      = ":8080"
	DefaultLogLevel  = "info"
)

// SetDefaults registers every key with its default. Registering all keys
// also lets environment variables override keys absent from the file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.user_agent", DefaultUserAgent)
	v.SetDefault("serve.addr", DefaultAddr)
	v.SetDefault("serve.allowed_origins", []string{})
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", false)
}

// New returns a viper instance with defaults, environment binding and the
// config file read. cfgFile overrides the search path; a missing file in
// the search path is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (types.ExplorerConfig, error) {
	var cfg types.ExplorerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.ExplorerConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if err := Validate(cfg); err != nil {
		return types.ExplorerConfig{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their config key rather than the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks cfg against its validate tags.
func Validate(cfg types.ExplorerConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	// Namespace is "ExplorerConfig.api.base_url"; drop the root type.
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be an absolute URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
