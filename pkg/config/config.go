package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Fetch    FetchConfig    `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduling and dispatch configuration"`
	Queue    QueueConfig    `yaml:"queue" json:"queue" jsonschema:"description=Dispatch queue configuration"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn" json:"dsn" jsonschema:"default=file:rssfetcher.db?mode=rwc&_txlock=immediate&_time_format=sqlite,description=Database connection string"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,minimum=1,description=Maximum number of open connections"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,minimum=0,description=Maximum number of idle connections"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=1h,description=Connection maximum lifetime"`
}

// FetchConfig holds http fetch settings
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Timeout of a single feed request"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=rssfetcher/1.0,description=User agent for HTTP requests"`
	MaxWorkers  int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum concurrent fetches"`
	MaxBodySize int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=20971520,minimum=1,description=Maximum bytes read from a feed response"`
}

// ScheduleConfig holds scheduling policy and dispatch settings
type ScheduleConfig struct {
	DefaultIntervalMins int           `yaml:"default_interval_mins" json:"default_interval_mins" jsonschema:"default=60,minimum=1,description=Regular fetch interval in minutes"`
	SoonHorizonHours    int           `yaml:"soon_horizon_hours" json:"soon_horizon_hours" jsonschema:"default=3,minimum=1,description=Fetch soon horizon in hours"`
	SoonBucketMins      int           `yaml:"soon_bucket_mins" json:"soon_bucket_mins" jsonschema:"default=5,minimum=1,description=Fetch soon bucket width in minutes"`
	DispatchInterval    time.Duration `yaml:"dispatch_interval" json:"dispatch_interval" jsonschema:"default=1m,description=How often due feeds are dispatched"`
	DispatchBatch       int           `yaml:"dispatch_batch" json:"dispatch_batch" jsonschema:"default=500,minimum=1,description=Maximum feeds dispatched per run"`
	StatsInterval       time.Duration `yaml:"stats_interval" json:"stats_interval" jsonschema:"default=10m,description=How often fetch stats are logged (0 disables)"`
}

// QueueConfig holds dispatch queue settings
type QueueConfig struct {
	Type  string      `yaml:"type" json:"type" jsonschema:"default=memory,enum=memory,enum=redis,description=Queue implementation"`
	Size  int         `yaml:"size" json:"size" jsonschema:"default=1000,minimum=1,description=Memory queue capacity"`
	Redis RedisConfig `yaml:"redis" json:"redis" jsonschema:"description=Redis queue settings"`
}

// RedisConfig holds redis queue settings
type RedisConfig struct {
	Addr        string        `yaml:"addr" json:"addr" jsonschema:"default=localhost:6379,description=Redis address"`
	Password    string        `yaml:"password" json:"password" jsonschema:"description=Redis password (can use environment variable)"`
	DB          int           `yaml:"db" json:"db" jsonschema:"default=0,minimum=0,description=Redis database"`
	Key         string        `yaml:"key" json:"key" jsonschema:"default=rssfetcher:queue,description=Redis list key"`
	PollTimeout time.Duration `yaml:"poll_timeout" json:"poll_timeout" jsonschema:"default=1s,description=Blocking pop timeout"`
}

// Default returns configuration with all defaults set
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
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

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:rssfetcher.db?mode=rwc&_txlock=immediate&_time_format=sqlite"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "rssfetcher/1.0"
	}
	if cfg.Fetch.MaxWorkers == 0 {
		cfg.Fetch.MaxWorkers = 5
	}
	if cfg.Fetch.MaxBodySize == 0 {
		cfg.Fetch.MaxBodySize = 20 * 1024 * 1024
	}

	// schedule
	if cfg.Schedule.DefaultIntervalMins == 0 {
		cfg.Schedule.DefaultIntervalMins = 60
	}
	if cfg.Schedule.SoonHorizonHours == 0 {
		cfg.Schedule.SoonHorizonHours = 3
	}
	if cfg.Schedule.SoonBucketMins == 0 {
		cfg.Schedule.SoonBucketMins = 5
	}
	if cfg.Schedule.DispatchInterval == 0 {
		cfg.Schedule.DispatchInterval = time.Minute
	}
	if cfg.Schedule.DispatchBatch == 0 {
		cfg.Schedule.DispatchBatch = 500
	}

	// queue
	if cfg.Queue.Type == "" {
		cfg.Queue.Type = "memory"
	}
	if cfg.Queue.Size == 0 {
		cfg.Queue.Size = 1000
	}
	if cfg.Queue.Redis.Addr == "" {
		cfg.Queue.Redis.Addr = "localhost:6379"
	}
	if cfg.Queue.Redis.Key == "" {
		cfg.Queue.Redis.Key = "rssfetcher:queue"
	}
	if cfg.Queue.Redis.PollTimeout == 0 {
		cfg.Queue.Redis.PollTimeout = time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch.timeout must be at least 1 second")
	}
	if cfg.Fetch.MaxWorkers < 1 {
		return fmt.Errorf("fetch.max_workers must be at least 1")
	}
	if cfg.Schedule.DefaultIntervalMins < 1 {
		return fmt.Errorf("schedule.default_interval_mins must be at least 1")
	}
	if cfg.Schedule.SoonHorizonHours < 1 || cfg.Schedule.SoonBucketMins < 1 {
		return fmt.Errorf("schedule.soon_horizon_hours and schedule.soon_bucket_mins must be positive")
	}
	if time.Duration(cfg.Schedule.SoonBucketMins)*time.Minute > time.Duration(cfg.Schedule.SoonHorizonHours)*time.Hour {
		return fmt.Errorf("schedule.soon_bucket_mins must not exceed the horizon")
	}
	if cfg.Schedule.DispatchInterval < time.Second {
		return fmt.Errorf("schedule.dispatch_interval must be at least 1 second")
	}
	if cfg.Schedule.StatsInterval < 0 {
		return fmt.Errorf("schedule.stats_interval must be non-negative")
	}

	switch cfg.Queue.Type {
	case "memory":
		if cfg.Queue.Size < 1 {
			return fmt.Errorf("queue.size must be at least 1")
		}
	case "redis":
		if cfg.Queue.Redis.Addr == "" {
			return fmt.Errorf("queue.redis.addr is required for redis queue")
		}
	default:
		return fmt.Errorf("unknown queue.type %q", cfg.Queue.Type)
	}
	return nil
}

// DefaultInterval returns the regular fetch interval
func (c ScheduleConfig) DefaultInterval() time.Duration {
	return time.Duration(c.DefaultIntervalMins) * time.Minute
}

// SoonHorizon returns the fetch soon horizon
func (c ScheduleConfig) SoonHorizon() time.Duration {
	return time.Duration(c.SoonHorizonHours) * time.Hour
}

// SoonBucket returns the fetch soon bucket width
func (c ScheduleConfig) SoonBucket() time.Duration {
	return time.Duration(c.SoonBucketMins) * time.Minute
}
