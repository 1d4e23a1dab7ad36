package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
database:
  dsn: "file:test.db"
  max_open_conns: 4
fetch:
  timeout: 10s
  user_agent: test-agent
  max_workers: 8
schedule:
  default_interval_mins: 30
  soon_horizon_hours: 2
  soon_bucket_mins: 10
  dispatch_interval: 30s
  dispatch_batch: 100
  stats_interval: 5m
queue:
  type: redis
  redis:
    addr: redis:6379
    db: 2
    poll_timeout: 2s
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "file:test.db", cfg.Database.DSN)
		assert.Equal(t, 4, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
		assert.Equal(t, 8, cfg.Fetch.MaxWorkers)
		assert.Equal(t, 30*time.Minute, cfg.Schedule.DefaultInterval())
		assert.Equal(t, 2*time.Hour, cfg.Schedule.SoonHorizon())
		assert.Equal(t, 10*time.Minute, cfg.Schedule.SoonBucket())
		assert.Equal(t, 30*time.Second, cfg.Schedule.DispatchInterval)
		assert.Equal(t, 100, cfg.Schedule.DispatchBatch)
		assert.Equal(t, 5*time.Minute, cfg.Schedule.StatsInterval)
		assert.Equal(t, "redis", cfg.Queue.Type)
		assert.Equal(t, "redis:6379", cfg.Queue.Redis.Addr)
		assert.Equal(t, 2, cfg.Queue.Redis.DB)
		assert.Equal(t, 2*time.Second, cfg.Queue.Redis.PollTimeout)
		assert.Equal(t, "rssfetcher:queue", cfg.Queue.Redis.Key)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "fetch:\n  max_workers: 2\n"))
		require.NoError(t, err)

		assert.Equal(t, 2, cfg.Fetch.MaxWorkers)
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, 60, cfg.Schedule.DefaultIntervalMins)
		assert.Equal(t, 3, cfg.Schedule.SoonHorizonHours)
		assert.Equal(t, 5, cfg.Schedule.SoonBucketMins)
		assert.Equal(t, "memory", cfg.Queue.Type)
		assert.Equal(t, 1000, cfg.Queue.Size)
		assert.Contains(t, cfg.Database.DSN, "rssfetcher.db")
		assert.Zero(t, cfg.Schedule.StatsInterval)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("TEST_REDIS_PASSWORD", "secret")
		cfg, err := Load(writeConfig(t, "queue:\n  redis:\n    password: ${TEST_REDIS_PASSWORD}\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.Queue.Redis.Password)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "fetch: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "queue:\n  type: kafka\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown queue.type")
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate(cfg))
	assert.Equal(t, time.Hour, cfg.Schedule.DefaultInterval())
	assert.Equal(t, 3*time.Hour, cfg.Schedule.SoonHorizon())
	assert.Equal(t, 5*time.Minute, cfg.Schedule.SoonBucket())
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, int64(20*1024*1024), cfg.Fetch.MaxBodySize)
}

func TestValidate(t *testing.T) {
	tbl := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"short timeout", func(c *Config) { c.Fetch.Timeout = time.Millisecond }, "fetch.timeout"},
		{"no workers", func(c *Config) { c.Fetch.MaxWorkers = -1 }, "fetch.max_workers"},
		{"bad interval", func(c *Config) { c.Schedule.DefaultIntervalMins = -5 }, "default_interval_mins"},
		{"bucket wider than horizon", func(c *Config) { c.Schedule.SoonBucketMins = 240 }, "must not exceed"},
		{"fast dispatch", func(c *Config) { c.Schedule.DispatchInterval = time.Millisecond }, "dispatch_interval"},
		{"negative stats", func(c *Config) { c.Schedule.StatsInterval = -time.Second }, "stats_interval"},
		{"memory size", func(c *Config) { c.Queue.Size = -1 }, "queue.size"},
		{"redis addr", func(c *Config) { c.Queue.Type = "redis"; c.Queue.Redis.Addr = "" }, "queue.redis.addr"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
