// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hbue-acm/ptaxml/lib/sealed"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "PTAXML_CONFIG"

// Config is the master configuration for ptaxml.
type Config struct {
	// Organization is the team affiliation written for every team.
	Organization string `yaml:"organization"`

	// RegionID is the external id of the single region.
	RegionID string `yaml:"region_id"`

	// Output is the default path of the generated contest document.
	Output string `yaml:"output"`

	// API configures the PTA client.
	API APIConfig `yaml:"api"`

	// Cookies configures where session cookies are read from.
	Cookies CookiesConfig `yaml:"cookies"`
}

// APIConfig configures the PTA API client.
type APIConfig struct {
	// BaseURL is the root of the JSON API.
	// Default: https://pintia.cn/api
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP attempt, as a Go duration string.
	// Default: 15s
	Timeout string `yaml:"timeout"`

	// MaxRetries is how many times a transient failure is retried.
	// Zero disables retrying.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`

	// RetryBackoff is the wait before the first retry, doubled for each
	// further retry.
	// Default: 500ms
	RetryBackoff string `yaml:"retry_backoff"`

	// DebugDump receives the body of the last fatal response.
	// Default: pta_error_dump.html
	DebugDump string `yaml:"debug_dump"`
}

// CookiesConfig locates session cookies. All fields are optional.
type CookiesConfig struct {
	// File is a JSON object of cookie name to value. Comments and
	// trailing commas are allowed. A name ending in .age is decrypted
	// with IdentityFile.
	File string `yaml:"file"`

	// IdentityFile holds the age identities for a sealed File.
	IdentityFile string `yaml:"identity_file"`

	// EnvFile is a dotenv file whose PTA_COOKIES entry is read.
	EnvFile string `yaml:"env_file"`
}

// Default returns the default configuration. A loaded file is merged
// on top of it.
func Default() *Config {
	return &Config{
		Organization: "HBUE",
		RegionID:     "1",
		Output:       "contest.xml",
		API: APIConfig{
			BaseURL:      "https://pintia.cn/api",
			Timeout:      "15s",
			MaxRetries:   3,
			RetryBackoff: "500ms",
			DebugDump:    "pta_error_dump.html",
		},
	}
}

// Load loads configuration from the file named by PTAXML_CONFIG, or
// returns [Default] when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Keys the file
// does not mention keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Output = expandVars(c.Output, vars)
	c.API.DebugDump = expandVars(c.API.DebugDump, vars)
	c.Cookies.File = expandVars(c.Cookies.File, vars)
	c.Cookies.IdentityFile = expandVars(c.Cookies.IdentityFile, vars)
	c.Cookies.EnvFile = expandVars(c.Cookies.EnvFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting every problem
// at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Organization == "" {
		errs = append(errs, fmt.Errorf("organization is required"))
	}
	if c.RegionID == "" {
		errs = append(errs, fmt.Errorf("region_id is required"))
	}
	if c.Output == "" {
		errs = append(errs, fmt.Errorf("output is required"))
	}

	if parsed, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	} else if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an http or https URL (got %q)", c.API.BaseURL))
	}
	if timeout, err := time.ParseDuration(c.API.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("api.timeout: %w", err))
	} else if timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive"))
	}
	if c.API.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("api.max_retries must not be negative"))
	}
	if backoff, err := time.ParseDuration(c.API.RetryBackoff); err != nil {
		errs = append(errs, fmt.Errorf("api.retry_backoff: %w", err))
	} else if backoff <= 0 {
		errs = append(errs, fmt.Errorf("api.retry_backoff must be positive"))
	}
	if c.API.DebugDump == "" {
		errs = append(errs, fmt.Errorf("api.debug_dump is required"))
	}

	if c.Cookies.File != "" && sealed.IsSealed(c.Cookies.File) && c.Cookies.IdentityFile == "" {
		errs = append(errs, fmt.Errorf("cookies.identity_file is required for sealed cookies.file %s", c.Cookies.File))
	}

	return errors.Join(errs...)
}

// TimeoutDuration returns api.timeout. Call after Validate.
func (a APIConfig) TimeoutDuration() time.Duration {
	duration, _ := time.ParseDuration(a.Timeout)
	return duration
}

// RetryBackoffDuration returns api.retry_backoff. Call after Validate.
func (a APIConfig) RetryBackoffDuration() time.Duration {
	duration, _ := time.ParseDuration(a.RetryBackoff)
	return duration
}
