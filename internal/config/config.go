package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Scoring  ScoringConfig  `koanf:"scoring"`
	Match    MatchConfig    `koanf:"match"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Port              int           `koanf:"port"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

type DatabaseConfig struct {
	URL      string `koanf:"url"`
	PoolSize int    `koanf:"pool_size"`
}

// RedisConfig configures the catalog metadata cache. An empty URL disables it.
type RedisConfig struct {
	URL      string        `koanf:"url"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

type CatalogConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

type ScoringConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

type MatchConfig struct {
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
	MinVoteCount        int     `koanf:"min_vote_count"`
	CandidateWindow     int     `koanf:"candidate_window"`
}

type PipelineConfig struct {
	Concurrency int `koanf:"concurrency"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Load configuration from defaults, an optional YAML file and env
func Load() (*Config, error) {
	return LoadWithKoanf()
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Catalog.APIKey == "" {
		errs = append(errs, errors.New("catalog.api_key is required (CATALOG_API_KEY)"))
	}
	if c.Catalog.BaseURL == "" {
		errs = append(errs, errors.New("catalog.base_url is required"))
	}
	if c.Scoring.URL == "" {
		errs = append(errs, errors.New("scoring.url is required (SCORING_URL)"))
	}
	if c.Match.SimilarityThreshold <= 0 || c.Match.SimilarityThreshold > 1 {
		errs = append(errs, fmt.Errorf("match.similarity_threshold must be in (0, 1], got %v", c.Match.SimilarityThreshold))
	}
	if c.Match.CandidateWindow < 1 {
		errs = append(errs, fmt.Errorf("match.candidate_window must be positive, got %d", c.Match.CandidateWindow))
	}
	if c.Match.MinVoteCount < 0 {
		errs = append(errs, fmt.Errorf("match.min_vote_count must not be negative, got %d", c.Match.MinVoteCount))
	}
	if c.Pipeline.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("pipeline.concurrency must be positive, got %d", c.Pipeline.Concurrency))
	}
	if c.Catalog.Timeout <= 0 || c.Scoring.Timeout <= 0 {
		errs = append(errs, errors.New("catalog.timeout and scoring.timeout must be positive"))
	}
	return errors.Join(errs...)
}
