// Package schedule computes when a feed should be attempted next.
// Policies are pure: they never touch storage and never look at fetch outcomes.
package schedule

import (
	"math/rand/v2"
	"time"
)

// Config holds scheduling policy parameters
type Config struct {
	DefaultInterval time.Duration // initial jitter window and regular cadence
	SoonHorizon     time.Duration // how far "fetch soon" spreads feeds
	BucketWidth     time.Duration // width of one "fetch soon" slot
}

// Policy calculates next fetch attempt timestamps
type Policy struct {
	defaultInterval time.Duration
	soonHorizon     time.Duration
	bucketWidth     time.Duration
	rnd             func() float64
}

// Option customizes Policy
type Option func(*Policy)

// WithRand sets the source of uniform random values in [0, 1)
func WithRand(fn func() float64) Option {
	return func(p *Policy) { p.rnd = fn }
}

// NewPolicy makes a policy, applying defaults for unset values:
// 60m interval, 3h horizon and 5m buckets.
func NewPolicy(cfg Config, opts ...Option) *Policy {
	if cfg.DefaultInterval <= 0 {
		cfg.DefaultInterval = 60 * time.Minute
	}
	if cfg.SoonHorizon <= 0 {
		cfg.SoonHorizon = 3 * time.Hour
	}
	if cfg.BucketWidth <= 0 {
		cfg.BucketWidth = 5 * time.Minute
	}
	p := &Policy{
		defaultInterval: cfg.DefaultInterval,
		soonHorizon:     cfg.SoonHorizon,
		bucketWidth:     cfg.BucketWidth,
		rnd:             rand.Float64, //nolint:gosec // jitter doesn't need crypto rand
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// InitialAttempt returns a seeding time uniformly spread over [now, now+DefaultInterval).
// Used for bulk-loaded feeds so they don't all hit the queue at the same instant.
func (p *Policy) InitialAttempt(now time.Time) time.Time {
	return now.Add(time.Duration(p.rnd() * float64(p.defaultInterval)))
}

// NextAttempt returns the regular cadence time after a dispatched fetch completes
func (p *Policy) NextAttempt(now time.Time) time.Time {
	return now.Add(p.defaultInterval)
}

// Buckets returns the number of "fetch soon" slots, SoonHorizon / BucketWidth, at least 1
func (p *Policy) Buckets() int64 {
	b := int64(p.soonHorizon / p.bucketWidth)
	if b < 1 {
		return 1
	}
	return b
}

// Bucket returns the slot for a feed, feedID mod Buckets.
// Keyed by id, so repeated calls for the same feed always land in the same slot.
func (p *Policy) Bucket(feedID int64) int64 {
	b := feedID % p.Buckets()
	if b < 0 {
		b += p.Buckets()
	}
	return b
}

// SoonAttempt returns the "fetch soon" time for a feed, now + Bucket(feedID) * BucketWidth
func (p *Policy) SoonAttempt(now time.Time, feedID int64) time.Time {
	return now.Add(time.Duration(p.Bucket(feedID)) * p.bucketWidth)
}

// DefaultInterval returns the configured cadence
func (p *Policy) DefaultInterval() time.Duration { return p.defaultInterval }
