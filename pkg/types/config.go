package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the document service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout: a stalled
	// request leaves its surface loading.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docexplorer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// APIConfig locates the search/visualization/topic service.
type APIConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the fixed API origin (e.g. "http://localhost:5000").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
}

// ServeConfig holds settings for the HTTP front end.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required"`

	// AllowedOrigins lists CORS origins allowed to read JSON view models.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig selects the logger flavor and level.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// JSON selects the production JSON encoder instead of the console encoder.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`
}

// ExplorerConfig groups every configurable part of the explorer.
type ExplorerConfig struct {
	API   APIConfig   `json:"api" yaml:"api" mapstructure:"api"`
	Serve ServeConfig `json:"serve" yaml:"serve" mapstructure:"serve"`
	Log   LogConfig   `json:"log" yaml:"log" mapstructure:"log"`
}
