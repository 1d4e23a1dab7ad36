package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy_Defaults(t *testing.T) {
	p := NewPolicy(Config{})
	assert.Equal(t, 60*time.Minute, p.DefaultInterval())
	assert.Equal(t, int64(36), p.Buckets()) // 3h / 5m
}

func TestPolicy_InitialAttempt(t *testing.T) {
	t.Run("bounds and distribution", func(t *testing.T) {
		p := NewPolicy(Config{DefaultInterval: 60 * time.Minute})
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		limit := now.Add(60 * time.Minute)

		const total = 10000
		bins := make([]int, 6) // ten-minute bins
		for i := 0; i < total; i++ {
			ts := p.InitialAttempt(now)
			require.False(t, ts.Before(now), "attempt %v before now", ts)
			require.False(t, ts.After(limit), "attempt %v after window", ts)
			idx := int(ts.Sub(now) / (10 * time.Minute))
			if idx == len(bins) {
				idx--
			}
			bins[idx]++
		}

		// uniform expectation is ~1667 per bin, stddev ~37
		for i, n := range bins {
			assert.Greater(t, n, 1400, "bin %d underpopulated", i)
			assert.Less(t, n, 1950, "bin %d overpopulated", i)
		}
	})

	t.Run("uses injected random source", func(t *testing.T) {
		p := NewPolicy(Config{DefaultInterval: 60 * time.Minute}, WithRand(func() float64 { return 0.5 }))
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, now.Add(30*time.Minute), p.InitialAttempt(now))
	})

	t.Run("zero random is now", func(t *testing.T) {
		p := NewPolicy(Config{}, WithRand(func() float64 { return 0 }))
		now := time.Now()
		assert.Equal(t, now, p.InitialAttempt(now))
	})
}

func TestPolicy_SoonAttempt(t *testing.T) {
	p := NewPolicy(Config{SoonHorizon: 3 * time.Hour, BucketWidth: 5 * time.Minute})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		feedID int64
		bucket int64
	}{
		{0, 0}, {1, 1}, {35, 35}, {36, 0}, {37, 1}, {100, 28}, {-1, 35},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bucket, p.Bucket(tt.feedID), "feed %d", tt.feedID)
		assert.Equal(t, now.Add(time.Duration(tt.bucket)*5*time.Minute), p.SoonAttempt(now, tt.feedID))
	}

	t.Run("deterministic across calls", func(t *testing.T) {
		for id := int64(1); id < 500; id++ {
			assert.Equal(t, p.SoonAttempt(now, id), p.SoonAttempt(now, id))
		}
	})

	t.Run("always within horizon", func(t *testing.T) {
		for id := int64(1); id < 1000; id++ {
			ts := p.SoonAttempt(now, id)
			assert.False(t, ts.Before(now))
			assert.True(t, ts.Before(now.Add(3*time.Hour)))
		}
	})

	t.Run("horizon smaller than bucket", func(t *testing.T) {
		p := NewPolicy(Config{SoonHorizon: time.Minute, BucketWidth: 5 * time.Minute})
		assert.Equal(t, int64(1), p.Buckets())
		assert.Equal(t, now, p.SoonAttempt(now, 42))
	})
}

func TestPolicy_NextAttempt(t *testing.T) {
	p := NewPolicy(Config{DefaultInterval: 15 * time.Minute})
	now := time.Now()
	assert.Equal(t, now.Add(15*time.Minute), p.NextAttempt(now))
}
