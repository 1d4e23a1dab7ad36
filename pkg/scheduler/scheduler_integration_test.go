package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rssfetcher/pkg/domain"
	"github.com/umputun/rssfetcher/pkg/feed"
	"github.com/umputun/rssfetcher/pkg/fetcher"
	"github.com/umputun/rssfetcher/pkg/queue"
	"github.com/umputun/rssfetcher/pkg/repository"
	"github.com/umputun/rssfetcher/pkg/schedule"
	"github.com/umputun/rssfetcher/pkg/telemetry"
)

type integrationEnv struct {
	repos    *repository.Repositories
	sched    *Scheduler
	reporter *telemetry.Reporter
	server   *httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

func setupIntegration(t *testing.T) *integrationEnv {
	t.Helper()
	return setupIntegrationWithQueue(t, queue.NewMemory(100))
}

func setupIntegrationWithQueue(t *testing.T, q Queue) *integrationEnv {
	t.Helper()
	env := &integrationEnv{hits: map[string]int{}}

	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.hits[r.URL.Path]++
		env.mu.Unlock()
		_, _ = fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>%[1]s</title>
<item><title>first</title><link>https://example.com%[1]s/1</link></item>
<item><title>second</title><link>https://example.com%[1]s/2</link></item>
</channel></rss>`, r.URL.Path)
	}))
	t.Cleanup(env.server.Close)

	repos, err := repository.NewRepositories(context.Background(),
		repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	env.repos = repos

	env.reporter = telemetry.NewReporter(lgr.NoOp)
	worker := fetcher.NewWorker(fetcher.Params{
		Feeds:    repos.Feed,
		Stories:  repos.Story,
		Getter:   feed.NewHTTPFetcher(5*time.Second, "rssfetcher-test"),
		Parser:   feed.NewParser(),
		Reporter: env.reporter,
	})
	env.sched = NewScheduler(Params{
		FeedManager:      repos.Feed,
		Fetcher:          worker,
		Queue:            q,
		Reporter:         env.reporter,
		Policy:           schedule.NewPolicy(schedule.Config{}),
		DispatchInterval: 20 * time.Millisecond,
		MaxWorkers:       3,
	})
	return env
}

func (e *integrationEnv) addFeed(t *testing.T, id, sourceID int64, active bool, next time.Time) {
	t.Helper()
	f := &domain.Feed{ID: id, URL: fmt.Sprintf("%s/feed%d", e.server.URL, id), SourceID: sourceID,
		Active: active, NextFetchAttempt: next}
	require.NoError(t, e.repos.Feed.CreateFeed(context.Background(), f))
}

func (e *integrationEnv) hitCount(path string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits[path]
}

func TestIntegration_DispatchAndFetch(t *testing.T) {
	env := setupIntegration(t)
	ctx := context.Background()
	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(24 * time.Hour)

	env.addFeed(t, 1, 10, true, past)
	env.addFeed(t, 2, 10, true, past)
	env.addFeed(t, 3, 10, false, past) // inactive and due
	env.addFeed(t, 4, 10, true, future)

	// a feed left queued by a crashed run must be released on start
	_, err := env.repos.Feed.MarkQueued(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, env.sched.Start(ctx))
	require.Eventually(t, func() bool {
		n, err := env.repos.Story.CountStories(ctx, 0)
		return err == nil && n == 4
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		n, err := env.repos.Feed.CountFeeds(ctx, domain.FeedFilter{ExcludeQueued: true})
		return err == nil && n == 4
	}, 5*time.Second, 20*time.Millisecond)
	env.sched.Stop()

	assert.Equal(t, 1, env.hitCount("/feed1"))
	assert.Equal(t, 1, env.hitCount("/feed2"))
	assert.Zero(t, env.hitCount("/feed3"), "inactive feed never fetched")
	assert.Zero(t, env.hitCount("/feed4"), "future feed not fetched")

	f1, err := env.repos.Feed.GetFeed(ctx, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, f1.LastFetchHash)
	require.NotNil(t, f1.LastFetchSuccess)
	assert.True(t, f1.NextFetchAttempt.After(time.Now().Add(50*time.Minute)), "regular cadence applied")

	stats := env.reporter.Stats()
	assert.Equal(t, int64(2), stats.Outcomes["success-changed"])
}

func TestIntegration_DispatchWithRedisQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	q, err := queue.NewRedis(context.Background(), queue.RedisConfig{Addr: mr.Addr(), Key: "rssfetcher:it"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })

	env := setupIntegrationWithQueue(t, q)
	ctx := context.Background()
	past := time.Now().UTC().Add(-time.Minute)
	env.addFeed(t, 1, 10, true, past)
	env.addFeed(t, 2, 10, true, past)
	env.addFeed(t, 3, 10, false, past)

	require.NoError(t, env.sched.Start(ctx))
	require.Eventually(t, func() bool {
		n, err := env.repos.Story.CountStories(ctx, 0)
		return err == nil && n == 4
	}, 10*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		n, err := env.repos.Feed.CountFeeds(ctx, domain.FeedFilter{ExcludeQueued: true})
		return err == nil && n == 3
	}, 5*time.Second, 20*time.Millisecond)
	env.sched.Stop()

	assert.Equal(t, 1, env.hitCount("/feed1"))
	assert.Equal(t, 1, env.hitCount("/feed2"))
	assert.Zero(t, env.hitCount("/feed3"))

	waiting, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, waiting, "every dispatched id consumed")
}

func TestIntegration_FetchSoon(t *testing.T) {
	env := setupIntegration(t)
	ctx := context.Background()
	far := time.Now().UTC().Add(48 * time.Hour)

	for id := int64(1); id <= 40; id++ {
		env.addFeed(t, id, 7, true, far)
	}
	env.addFeed(t, 100, 8, true, far) // another source
	_, err := env.repos.Feed.MarkQueued(ctx, 5)
	require.NoError(t, err)

	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	env.sched.now = func() time.Time { return now }

	count, err := env.sched.FetchSoon(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(39), count, "queued feed excluded")

	for id := int64(1); id <= 40; id++ {
		f, err := env.repos.Feed.GetFeed(ctx, id)
		require.NoError(t, err)
		if id == 5 {
			assert.True(t, far.Equal(f.NextFetchAttempt), "queued feed untouched")
			continue
		}
		want := now.Add(time.Duration(id%36) * 5 * time.Minute)
		assert.True(t, want.Equal(f.NextFetchAttempt), "feed %d: want %v, got %v", id, want, f.NextFetchAttempt)
		assert.False(t, f.NextFetchAttempt.After(now.Add(3*time.Hour)))
	}

	other, err := env.repos.Feed.GetFeed(ctx, 100)
	require.NoError(t, err)
	assert.True(t, far.Equal(other.NextFetchAttempt))

	t.Run("same result on repeat", func(t *testing.T) {
		_, err := env.sched.FetchSoon(ctx, 7)
		require.NoError(t, err)
		f, err := env.repos.Feed.GetFeed(ctx, 37)
		require.NoError(t, err)
		assert.True(t, now.Add(5*time.Minute).Equal(f.NextFetchAttempt))
	})

	t.Run("zero source leaves other sources untouched", func(t *testing.T) {
		env.addFeed(t, 200, 0, true, far)
		count, err := env.sched.FetchSoon(ctx, 0)
		require.Error(t, err)
		assert.Zero(t, count)

		for _, id := range []int64{100, 200} {
			f, err := env.repos.Feed.GetFeed(ctx, id)
			require.NoError(t, err)
			assert.True(t, far.Equal(f.NextFetchAttempt), "feed %d must keep its schedule", id)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		count, err := env.sched.FetchSoon(ctx, 999)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestIntegration_RunOnce(t *testing.T) {
	env := setupIntegration(t)
	ctx := context.Background()
	past := time.Now().UTC().Add(-time.Minute)

	env.addFeed(t, 1, 1, true, past)
	env.addFeed(t, 2, 1, true, past)

	results, err := env.sched.RunOnce(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, domain.OutcomeChanged, r.Outcome)
		assert.Equal(t, 2, r.Inserted)
	}

	// nothing is due after the run
	results, err = env.sched.RunOnce(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	res, err := env.sched.FetchFeedNow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnchanged, res.Outcome)
}
