package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig defines redis queue parameters
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	Key         string        // list key, defaults to "rssfetcher:queue"
	PollTimeout time.Duration // BRPOP timeout, consume re-checks the context after each one
}

// Redis is a durable queue stored in a redis list, ids pushed on the left and popped from the right
type Redis struct {
	client      *redis.Client
	key         string
	pollTimeout time.Duration
}

// NewRedis connects to redis and verifies the connection
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}
	return NewRedisWithClient(client, cfg.Key, cfg.PollTimeout), nil
}

// NewRedisWithClient makes a queue over an existing client
func NewRedisWithClient(client *redis.Client, key string, pollTimeout time.Duration) *Redis {
	if key == "" {
		key = "rssfetcher:queue"
	}
	if pollTimeout <= 0 {
		pollTimeout = time.Second
	}
	return &Redis{client: client, key: key, pollTimeout: pollTimeout}
}

// Enqueue pushes feed id to the list
func (q *Redis) Enqueue(ctx context.Context, feedID int64) error {
	if err := q.client.LPush(ctx, q.key, feedID).Err(); err != nil {
		return fmt.Errorf("enqueue feed %d: %w", feedID, err)
	}
	return nil
}

// Consume blocks until an id is popped or the context is canceled
func (q *Redis) Consume(ctx context.Context) (int64, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		res, err := q.client.BRPop(ctx, q.pollTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue // poll timeout, nothing queued
		}
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			if errors.Is(err, redis.ErrClosed) {
				return 0, ErrClosed
			}
			return 0, fmt.Errorf("consume: %w", err)
		}
		if len(res) != 2 {
			return 0, fmt.Errorf("consume: unexpected reply %v", res)
		}
		id, err := strconv.ParseInt(res[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("consume: bad feed id %q: %w", res[1], err)
		}
		return id, nil
	}
}

// Len returns number of waiting ids
func (q *Redis) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("queue length: %w", err)
	}
	return n, nil
}

// Close closes the redis client
func (q *Redis) Close() error {
	return q.client.Close()
}
