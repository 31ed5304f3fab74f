package myft

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/financial-times/myft.go/pkg/constants"
)

// Config is everything a Client needs, resolved once before construction.
type Config struct {
	// APIRoot is prefixed to every endpoint, e.g. https://myft-api.ft.com/v3/
	APIRoot string `yaml:"api_root"`
	APIKey  string `yaml:"api_key"`

	// Environment set to "production" makes every non-GET request carry a JSON body.
	Environment           string `yaml:"environment"`
	BypassMaintenanceMode bool   `yaml:"bypass_maintenance_mode"`
	SystemCode            string `yaml:"system_code"`

	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() (Config, error) {
	return Config{}.withEnv()
}

// LoadConfig reads a YAML config file, overlays the environment and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg, err = cfg.withEnv()
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c Config) withEnv() (Config, error) {
	c.APIRoot = GetEnvOrDefault(constants.EnvAPIURL, c.APIRoot)
	c.APIKey = GetEnvOrDefault(constants.EnvAPIKey, GetEnvOrDefault(constants.EnvUserPrefsAPIKey, c.APIKey))
	c.Environment = GetEnvOrDefault(constants.EnvEnvironment, c.Environment)
	c.SystemCode = GetEnvOrDefault(constants.EnvSystemCode, c.SystemCode)

	if v := GetEnvOrDefault(constants.EnvBypassMaintenance, ""); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			// any other non-empty value switches the flag on
			enabled = true
		}
		c.BypassMaintenanceMode = enabled
	}

	if v := GetEnvOrDefault(constants.EnvTimeout, ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", constants.EnvTimeout, err)
		}
		c.Timeout = d
	}

	return c, nil
}

// IsProduction reports whether the client talks to the production edge.
func (c Config) IsProduction() bool {
	return c.Environment == constants.ProductionEnvironment
}

func (c Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.APIRoot == "" {
		errs = errs.Append("api_root", ErrNoAPIRoot)
	} else if u, err := url.Parse(c.APIRoot); err != nil || u.Scheme == "" || u.Host == "" {
		errs = errs.Append("api_root", fmt.Errorf("must be an absolute URL, got %q", c.APIRoot))
	}

	if c.Timeout < 0 {
		errs = errs.Append("timeout", errors.New("must not be negative"))
	}

	for name := range c.Headers {
		if name == "" {
			errs = errs.Append("headers", errors.New("header name must not be empty"))
		}
	}

	return errs.ToError()
}

// headers composes the construction-time header set: library defaults, then the
// flags derived from the config, then the caller supplied headers.
func (c Config) headers() http.Header {
	h := http.Header{}
	h.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	if c.APIKey != "" {
		h.Set(constants.HeaderAPIKey, c.APIKey)
	}
	if c.BypassMaintenanceMode {
		h.Set(constants.HeaderBypassMaintenance, constants.BypassMaintenanceEnabled)
	}
	if c.SystemCode != "" {
		h.Set(constants.HeaderOriginSystemID, c.SystemCode)
	}

	for k, v := range c.Headers {
		h.Set(k, v)
	}

	return h
}
