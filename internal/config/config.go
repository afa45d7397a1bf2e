// Package config loads the application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported remote sources.
const (
	SourceREST    = "rest"
	SourceGraphQL = "graphql"
)

// DefaultAccount is the account whose public profile is displayed. It is
// fixed: the identity and social links shown alongside belong to it.
const DefaultAccount = "betomoedano"

// MaxPerPage is the largest page size the GitHub API accepts.
const MaxPerPage = 100

// Config holds every tunable of the application.
type Config struct {
	APIURL          string        `env:"DEVFOLIO_API_URL" envDefault:"https://api.github.com/"`
	GraphQLURL      string        `env:"DEVFOLIO_GRAPHQL_URL" envDefault:"https://api.github.com/graphql"`
	Source          string        `env:"DEVFOLIO_SOURCE" envDefault:"rest"`
	Token           string        `env:"GITHUB_TOKEN"`
	PerPage         int           `env:"DEVFOLIO_PER_PAGE" envDefault:"100"`
	TopN            int           `env:"DEVFOLIO_TOP_N" envDefault:"10"`
	ProjectsPerPage int           `env:"DEVFOLIO_PROJECTS_PER_PAGE" envDefault:"10"`
	Timeout         time.Duration `env:"DEVFOLIO_TIMEOUT" envDefault:"10s"`
	RateLimitSleep  time.Duration `env:"DEVFOLIO_RATE_LIMIT_SLEEP" envDefault:"0s"`
}

// Parse reads the environment into a Config without validating it, so
// callers can apply overrides first.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceREST:
	case SourceGraphQL:
		if c.Token == "" {
			return errors.New("the graphql source requires GITHUB_TOKEN")
		}
	default:
		return fmt.Errorf("unknown source %q (want %q or %q)", c.Source, SourceREST, SourceGraphQL)
	}
	if c.PerPage < 1 || c.PerPage > MaxPerPage {
		return fmt.Errorf("per-page must be between 1 and %d, got %d", MaxPerPage, c.PerPage)
	}
	if c.ProjectsPerPage < 1 || c.ProjectsPerPage > MaxPerPage {
		return fmt.Errorf("projects per-page must be between 1 and %d, got %d", MaxPerPage, c.ProjectsPerPage)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top-n must be at least 1, got %d", c.TopN)
	}
	if c.Timeout < 0 || c.RateLimitSleep < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}
