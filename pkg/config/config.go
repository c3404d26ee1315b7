package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/plaidfeed/pkg/weigh"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	Redis    RedisConfig    `yaml:"redis" json:"redis" jsonschema:"description=Optional redis snapshot publisher"`
	Sources  []Source       `yaml:"sources" json:"sources" jsonschema:"description=Content sources merged into the feed"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS links"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:plaidfeed.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds source update settings
type ScheduleConfig struct {
	UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=30m,description=Source update interval"`
	MaxWorkers     int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent source fetches"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=30s,description=Timeout for a single source fetch"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Plaidfeed/1.0,description=User agent for HTTP requests"`
	ExtractSummary bool          `yaml:"extract_summary" json:"extract_summary" jsonschema:"default=false,description=Fill empty item summaries with text extracted from the linked page"`
}

// RedisConfig holds settings of the redis snapshot publisher, empty address disables it
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr" jsonschema:"description=Redis address (host:port)"`
	Password string `yaml:"password" json:"password" jsonschema:"description=Redis password"`
	DB       int    `yaml:"db" json:"db" jsonschema:"default=0,description=Redis database number"`
	Key      string `yaml:"key" json:"key" jsonschema:"default=plaidfeed:feed,description=Key of the sorted set holding the feed"`
}

// Source describes one content source
type Source struct {
	Name     string `yaml:"name" json:"name" jsonschema:"required,description=Unique source name"`
	URL      string `yaml:"url" json:"url" jsonschema:"required,description=RSS or Atom feed URL"`
	Strategy string `yaml:"strategy" json:"strategy" jsonschema:"enum=natural,enum=popularity,default=natural,description=Weighing strategy"`
	PageSize int    `yaml:"page_size" json:"page_size" jsonschema:"default=20,minimum=1,description=Items per page"`
	MaxPages int    `yaml:"max_pages" json:"max_pages" jsonschema:"default=3,minimum=1,description=Maximum pages taken from one fetch"`
	Disabled bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Start with the source filtered out"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:plaidfeed.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Schedule.UpdateInterval == 0 {
		c.Schedule.UpdateInterval = 30 * time.Minute
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 5
	}
	if c.Schedule.FetchTimeout == 0 {
		c.Schedule.FetchTimeout = 30 * time.Second
	}
	if c.Schedule.UserAgent == "" {
		c.Schedule.UserAgent = "Plaidfeed/1.0"
	}

	if c.Redis.Key == "" {
		c.Redis.Key = "plaidfeed:feed"
	}

	for i := range c.Sources {
		src := &c.Sources[i]
		if src.Name == "" {
			src.Name = src.URL
		}
		if src.Strategy == "" {
			src.Strategy = "natural"
		}
		if src.PageSize == 0 {
			src.PageSize = 20
		}
		if src.MaxPages == 0 {
			src.MaxPages = 3
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Schedule.UpdateInterval < time.Second {
		return fmt.Errorf("schedule update_interval must be at least 1 second")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule max_workers must be at least 1")
	}

	names := map[string]bool{}
	for i, src := range cfg.Sources {
		if src.URL == "" {
			return fmt.Errorf("sources[%d].url is required", i)
		}
		if _, err := url.ParseRequestURI(src.URL); err != nil {
			return fmt.Errorf("sources[%d].url is invalid: %w", i, err)
		}
		if names[src.Name] {
			return fmt.Errorf("duplicate source name %q", src.Name)
		}
		names[src.Name] = true
		if _, err := weigh.ParseStrategy(src.Strategy); err != nil {
			return fmt.Errorf("source %q: %w", src.Name, err)
		}
		if src.PageSize < 1 || src.MaxPages < 1 {
			return fmt.Errorf("source %q: page_size and max_pages must be at least 1", src.Name)
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetSources returns configured sources
func (c *Config) GetSources() []Source {
	return c.Sources
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
