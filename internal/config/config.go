// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for apiref.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the apiref configuration.
type Config struct {
	// Output is the output file path for the generated index
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// RootPath is stripped from source file paths to build relative source links
	RootPath string `mapstructure:"root_path" yaml:"root_path" json:"root_path"`

	// Sections is the ordered section catalog. Empty means the built-in catalog.
	Sections []SectionConfig `mapstructure:"sections" yaml:"sections,omitempty" json:"sections,omitempty"`

	// Manifests configures endpoint manifest discovery
	Manifests ManifestConfig `mapstructure:"manifests" yaml:"manifests" json:"manifests"`

	// Sources is the ordered list of endpoint sets to aggregate.
	// Empty means every loaded set, in load order, with its declared prefix.
	Sources []SourceConfig `mapstructure:"sources" yaml:"sources,omitempty" json:"sources,omitempty"`

	// Filter restricts which URIs are rendered
	Filter FilterConfig `mapstructure:"filter" yaml:"filter" json:"filter"`

	// Render contains presentation settings
	Render RenderConfig `mapstructure:"render" yaml:"render" json:"render"`

	// Server contains docs server settings
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`

	// Log contains logging configuration
	Log LogConfig `mapstructure:"log" yaml:"log" json:"log"`

	// OpenAPI contains settings for OpenAPI export
	OpenAPI OpenAPIConfig `mapstructure:"openapi" yaml:"openapi" json:"openapi"`
}

// SectionConfig declares one documentation section.
type SectionConfig struct {
	// ID is the stable section identifier
	ID string `mapstructure:"id" yaml:"id" json:"id"`

	// Title is the (already localized) display title
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// Description is an optional markdown description
	Description string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
}

// ManifestConfig contains endpoint manifest discovery configuration.
type ManifestConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// SourceConfig pairs an endpoint set with its URL prefix.
type SourceConfig struct {
	// Set is the endpoint set name
	Set string `mapstructure:"set" yaml:"set" json:"set"`

	// Prefix is the URL prefix used to derive URIs
	Prefix string `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
}

// FilterConfig restricts rendered URIs with glob patterns.
type FilterConfig struct {
	// Include keeps only URIs matching one of these patterns
	Include []string `mapstructure:"include" yaml:"include,omitempty" json:"include,omitempty"`

	// Exclude drops URIs matching one of these patterns
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// RenderConfig contains presentation settings.
type RenderConfig struct {
	// Title is the page title
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// Language is the BCP 47 tag used for title casing
	Language string `mapstructure:"language" yaml:"language" json:"language"`

	// TitleCase title-cases section titles in rendered output
	TitleCase bool `mapstructure:"title_case" yaml:"title_case" json:"title_case"`

	// SourceURL is a link template with {file} and {line} placeholders
	SourceURL string `mapstructure:"source_url" yaml:"source_url,omitempty" json:"source_url,omitempty"`

	// Width is the word wrap width for terminal output (0 = renderer default)
	Width int `mapstructure:"width" yaml:"width" json:"width"`
}

// ServerConfig contains docs server settings.
type ServerConfig struct {
	// Addr is the listen address
	Addr string `mapstructure:"addr" yaml:"addr" json:"addr"`

	// CacheTTL is how long rendered pages are cached, in seconds (0 = forever)
	CacheTTL int `mapstructure:"cache_ttl" yaml:"cache_ttl" json:"cache_ttl"`

	// ReadTimeout is the request read timeout in seconds
	ReadTimeout int `mapstructure:"read_timeout" yaml:"read_timeout" json:"read_timeout"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`

	// OnChange is the command to run on change
	OnChange string `mapstructure:"on_change" yaml:"on_change,omitempty" json:"on_change,omitempty"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// OpenAPIConfig contains OpenAPI export settings.
type OpenAPIConfig struct {
	// Version is the OpenAPI version to generate (3.0.3, 3.1.0)
	Version string `mapstructure:"version" yaml:"version" json:"version"`

	// Info contains API metadata
	Info InfoConfig `mapstructure:"info" yaml:"info" json:"info"`
}

// InfoConfig contains API metadata.
type InfoConfig struct {
	// Title is the API title
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// Description is the API description
	Description string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`

	// Version is the API version
	Version string `mapstructure:"version" yaml:"version" json:"version"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"apiref.yaml",
	"apiref.json",
	"apiref.toml",
	".apiref.yaml",
	".apiref.json",
	".apiref.toml",
}

// supportedFormats is the list of supported output formats.
var supportedFormats = []string{
	"yaml",
	"json",
}

// supportedLogLevels is the list of supported log levels.
var supportedLogLevels = []string{
	"debug",
	"info",
	"warn",
	"error",
}

var (
	defaultInclude = []string{
		"**/*.endpoints.yaml",
		"**/*.endpoints.yml",
		"**/*.endpoints.json",
		"**/*.endpoints.toml",
	}
	defaultExclude = []string{
		"vendor/**",
		"node_modules/**",
		".git/**",
		"dist/**",
		"build/**",
	}
)

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: "api-index.yaml",
		Format: "yaml",
		Manifests: ManifestConfig{
			Paths:   []string{"."},
			Include: append([]string(nil), defaultInclude...),
			Exclude: append([]string(nil), defaultExclude...),
		},
		Render: RenderConfig{
			Title:    "API documentation",
			Language: "en",
		},
		Server: ServerConfig{
			Addr:        ":8080",
			ReadTimeout: 10,
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
		OpenAPI: OpenAPIConfig{
			Version: "3.0.3",
			Info: InfoConfig{
				Title:   "API",
				Version: "1.0.0",
			},
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. apiref.yaml
// 2. apiref.json
// 3. apiref.toml
// 4. .apiref.yaml
// 5. .apiref.json
// 6. .apiref.toml
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("root_path", d.RootPath)
	v.SetDefault("manifests.paths", d.Manifests.Paths)
	v.SetDefault("manifests.include", d.Manifests.Include)
	v.SetDefault("manifests.exclude", d.Manifests.Exclude)
	v.SetDefault("render.title", d.Render.Title)
	v.SetDefault("render.language", d.Render.Language)
	v.SetDefault("render.title_case", d.Render.TitleCase)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cache_ttl", d.Server.CacheTTL)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("openapi.version", d.OpenAPI.Version)
	v.SetDefault("openapi.info.title", d.OpenAPI.Info.Title)
	v.SetDefault("openapi.info.version", d.OpenAPI.Info.Version)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Format != "" && !contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	if c.Log.Level != "" && !contains(supportedLogLevels, c.Log.Level) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unsupported level %q, must be one of: %s", c.Log.Level, strings.Join(supportedLogLevels, ", ")),
		})
	}

	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		field := fmt.Sprintf("sections[%d]", i)
		if s.ID == "" {
			errs = append(errs, ValidationError{Field: field + ".id", Message: "id is required"})
			continue
		}
		if seen[s.ID] {
			errs = append(errs, ValidationError{Field: field + ".id", Message: fmt.Sprintf("duplicate section %q", s.ID)})
		}
		seen[s.ID] = true
		if s.Title == "" {
			errs = append(errs, ValidationError{Field: field + ".title", Message: "title is required"})
		}
	}

	for i, s := range c.Sources {
		if s.Set == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("sources[%d].set", i),
				Message: "set is required",
			})
		}
	}

	if c.OpenAPI.Version != "" {
		if c.OpenAPI.Version != "3.0.3" && c.OpenAPI.Version != "3.1.0" {
			errs = append(errs, ValidationError{
				Field:   "openapi.version",
				Message: fmt.Sprintf("unsupported OpenAPI version %q, must be 3.0.3 or 3.1.0", c.OpenAPI.Version),
			})
		}
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if c.Server.CacheTTL < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.cache_ttl",
			Message: "cache_ttl must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ConfigFilePath returns the path of the loaded config file, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
