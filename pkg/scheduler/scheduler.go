package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/umputun/rssfetcher/pkg/domain"
	"github.com/umputun/rssfetcher/pkg/fetcher"
	"github.com/umputun/rssfetcher/pkg/queue"
	"github.com/umputun/rssfetcher/pkg/schedule"
	"github.com/umputun/rssfetcher/pkg/telemetry"
)

//go:generate moq -out mocks/feed_manager.go -pkg mocks -skip-ensure -fmt goimports . FeedManager
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/reporter.go -pkg mocks -skip-ensure -fmt goimports . Reporter

// Scheduler dispatches due feeds to a queue and runs the consumer pool fetching them.
// It also applies on-demand "fetch soon" rescheduling.
type Scheduler struct {
	feedManager FeedManager
	fetcher     Fetcher
	queue       Queue
	reporter    Reporter
	policy      *schedule.Policy

	dispatchInterval time.Duration
	dispatchBatch    int
	statsInterval    time.Duration
	maxWorkers       int
	now              func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// FeedManager handles feed state used for dispatching
type FeedManager interface {
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetFeedsToFetch(ctx context.Context, now time.Time, limit int) ([]domain.Feed, error)
	MarkQueued(ctx context.Context, feedID int64) (bool, error)
	CompleteFetch(ctx context.Context, feedID int64, nextAttempt time.Time) error
	ResetQueued(ctx context.Context) (int64, error)
	RescheduleFeeds(ctx context.Context, filter domain.FeedFilter, next func(feedID int64) time.Time) (int64, error)
}

// Fetcher runs fetch attempts, failures are reported in results
type Fetcher interface {
	Fetch(ctx context.Context, f domain.Feed) fetcher.Result
	FetchBatch(ctx context.Context, feeds []domain.Feed, workers int) []fetcher.Result
}

// Queue carries feed ids from dispatch to consumers
type Queue interface {
	Enqueue(ctx context.Context, feedID int64) error
	Consume(ctx context.Context) (int64, error)
	Len(ctx context.Context) (int64, error)
}

// Reporter is the logging and error sink
type Reporter interface {
	Logf(format string, args ...any)
	ReportError(err error, format string, args ...any)
	Stats() telemetry.Stats
}

// Params defines scheduler dependencies and parameters
type Params struct {
	FeedManager FeedManager
	Fetcher     Fetcher
	Queue       Queue
	Reporter    Reporter
	Policy      *schedule.Policy

	DispatchInterval time.Duration // how often due feeds are dispatched
	DispatchBatch    int           // max feeds dispatched per run
	StatsInterval    time.Duration // how often stats are logged, 0 disables
	MaxWorkers       int           // concurrent fetches
	Now              func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.DispatchInterval <= 0 {
		p.DispatchInterval = time.Minute
	}
	if p.DispatchBatch <= 0 {
		p.DispatchBatch = 500
	}
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = 5
	}
	if p.Policy == nil {
		p.Policy = schedule.NewPolicy(schedule.Config{})
	}
	if p.Now == nil {
		p.Now = time.Now
	}

	return &Scheduler{
		feedManager:      p.FeedManager,
		fetcher:          p.Fetcher,
		queue:            p.Queue,
		reporter:         p.Reporter,
		policy:           p.Policy,
		dispatchInterval: p.DispatchInterval,
		dispatchBatch:    p.DispatchBatch,
		statsInterval:    p.StatsInterval,
		maxWorkers:       p.MaxWorkers,
		now:              p.Now,
	}
}

// Start releases feeds left queued by a previous run and starts dispatch, consumers and stats loops
func (s *Scheduler) Start(ctx context.Context) error {
	released, err := s.feedManager.ResetQueued(ctx)
	if err != nil {
		return fmt.Errorf("reset queued feeds: %w", err)
	}
	if released > 0 {
		s.reporter.Logf("[INFO] released %d feeds left queued", released)
	}

	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(2)
	go s.dispatchLoop(ctx)
	go s.consumeLoop(ctx)

	if s.statsInterval > 0 {
		s.wg.Add(1)
		go s.statsLoop(ctx)
	}

	s.reporter.Logf("[INFO] scheduler started, dispatch interval %v, batch %d, workers %d, fetch interval %v",
		s.dispatchInterval, s.dispatchBatch, s.maxWorkers, s.policy.DefaultInterval())
	return nil
}

// Stop cancels all loops and waits for in-flight fetches to finish
func (s *Scheduler) Stop() {
	s.reporter.Logf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.reporter.Logf("[INFO] scheduler stopped")
}

// DispatchDue enqueues active, not queued feeds with next_fetch_attempt in the past.
// Each feed is marked queued before it is enqueued. Returns number of enqueued feeds.
func (s *Scheduler) DispatchDue(ctx context.Context) (int, error) {
	feeds, err := s.feedManager.GetFeedsToFetch(ctx, s.now().UTC(), s.dispatchBatch)
	if err != nil {
		return 0, fmt.Errorf("get feeds to fetch: %w", err)
	}

	count := 0
	for _, f := range feeds {
		if !f.Active {
			continue
		}
		ok, err := s.feedManager.MarkQueued(ctx, f.ID)
		if err != nil {
			s.reporter.ReportError(err, "mark feed %d queued", f.ID)
			continue
		}
		if !ok {
			continue // queued by someone else
		}
		if err := s.queue.Enqueue(ctx, f.ID); err != nil {
			s.reporter.ReportError(err, "enqueue feed %d", f.ID)
			s.release(f)
			if ctx.Err() != nil {
				return count, ctx.Err()
			}
			continue
		}
		count++
	}

	if count > 0 {
		s.reporter.Logf("[INFO] dispatched %d feeds", count)
	}
	return count, nil
}

// FetchSoon reschedules feeds of the source into buckets over the next few hours, by feed id.
// Queued feeds are not touched. Returns number of rescheduled feeds, zero matches is not an error.
// The source id must be positive, a zero id would match feeds of every source.
func (s *Scheduler) FetchSoon(ctx context.Context, sourceID int64) (int64, error) {
	if sourceID <= 0 {
		return 0, fmt.Errorf("fetch soon: invalid source id %d", sourceID)
	}
	now := s.now().UTC()
	count, err := s.feedManager.RescheduleFeeds(ctx, domain.FeedFilter{SourceID: sourceID, ExcludeQueued: true},
		func(feedID int64) time.Time { return s.policy.SoonAttempt(now, feedID) })
	if err != nil {
		return 0, fmt.Errorf("fetch soon for source %d: %w", sourceID, err)
	}
	s.reporter.Logf("[INFO] source %d: %d feeds rescheduled to fetch soon", sourceID, count)
	return count, nil
}

// FetchFeedNow fetches a single active feed synchronously and sets its next regular attempt
func (s *Scheduler) FetchFeedNow(ctx context.Context, feedID int64) (fetcher.Result, error) {
	f, err := s.feedManager.GetFeed(ctx, feedID)
	if err != nil {
		return fetcher.Result{}, fmt.Errorf("get feed: %w", err)
	}
	if !f.Active {
		return fetcher.Result{}, fmt.Errorf("feed %d is not active", feedID)
	}

	res := s.fetcher.Fetch(ctx, *f)
	if err := s.feedManager.CompleteFetch(context.WithoutCancel(ctx), f.ID, s.policy.NextAttempt(s.now().UTC())); err != nil {
		return res, fmt.Errorf("complete fetch: %w", err)
	}
	return res, nil
}

// RunOnce fetches all due feeds without the queue, waits for completion and returns results
func (s *Scheduler) RunOnce(ctx context.Context) ([]fetcher.Result, error) {
	feeds, err := s.feedManager.GetFeedsToFetch(ctx, s.now().UTC(), s.dispatchBatch)
	if err != nil {
		return nil, fmt.Errorf("get feeds to fetch: %w", err)
	}

	batch := make([]domain.Feed, 0, len(feeds))
	for _, f := range feeds {
		if !f.Active {
			continue
		}
		ok, err := s.feedManager.MarkQueued(ctx, f.ID)
		if err != nil {
			s.reporter.ReportError(err, "mark feed %d queued", f.ID)
			continue
		}
		if ok {
			batch = append(batch, f)
		}
	}

	s.reporter.Logf("[INFO] fetching %d due feeds", len(batch))
	results := s.fetcher.FetchBatch(ctx, batch, s.maxWorkers)

	completeCtx := context.WithoutCancel(ctx)
	for _, r := range results {
		if err := s.feedManager.CompleteFetch(completeCtx, r.FeedID, s.policy.NextAttempt(s.now().UTC())); err != nil {
			s.reporter.ReportError(err, "complete fetch for feed %d", r.FeedID)
		}
	}
	return results, nil
}

func (s *Scheduler) dispatchLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.dispatchInterval)
	defer ticker.Stop()

	// run immediately on start
	if _, err := s.DispatchDue(ctx); err != nil && ctx.Err() == nil {
		s.reporter.ReportError(err, "dispatch")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.DispatchDue(ctx); err != nil && ctx.Err() == nil {
				s.reporter.ReportError(err, "dispatch")
			}
		}
	}
}

// consumeLoop pulls feed ids from the queue and processes them with up to maxWorkers goroutines
func (s *Scheduler) consumeLoop(ctx context.Context) {
	defer s.wg.Done()

	var g errgroup.Group
	g.SetLimit(s.maxWorkers)
	defer func() { _ = g.Wait() }()

	for {
		feedID, err := s.queue.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, queue.ErrClosed) {
				return
			}
			s.reporter.ReportError(err, "consume")
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		g.Go(func() error {
			s.processFeed(ctx, feedID)
			return nil
		})
	}
}

// processFeed reloads the feed, fetches it if still active and sets the regular cadence
func (s *Scheduler) processFeed(ctx context.Context, feedID int64) {
	f, err := s.feedManager.GetFeed(ctx, feedID)
	if err != nil {
		if errors.Is(err, domain.ErrFeedNotFound) {
			s.reporter.Logf("[WARN] feed %d from queue not found", feedID)
			return
		}
		s.reporter.ReportError(err, "load queued feed %d", feedID)
		return
	}

	if !f.Active {
		s.reporter.Logf("[DEBUG] feed %d is not active, skipped", feedID)
		s.release(*f)
		return
	}

	s.fetcher.Fetch(ctx, *f)

	next := s.policy.NextAttempt(s.now().UTC())
	if err := s.feedManager.CompleteFetch(context.WithoutCancel(ctx), f.ID, next); err != nil {
		s.reporter.ReportError(err, "complete fetch for feed %d", f.ID)
	}
}

// release clears the queued flag keeping the feed's schedule
func (s *Scheduler) release(f domain.Feed) {
	if err := s.feedManager.CompleteFetch(context.Background(), f.ID, f.NextFetchAttempt); err != nil {
		s.reporter.ReportError(err, "release feed %d", f.ID)
	}
}

func (s *Scheduler) statsLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.logStats(ctx)
		}
	}
}

// logStats logs fetch counters with the number of feed ids waiting in the queue
func (s *Scheduler) logStats(ctx context.Context) {
	waiting, err := s.queue.Len(ctx)
	if err != nil {
		s.reporter.ReportError(err, "queue length")
		s.reporter.Logf("[INFO] fetch stats: %s", s.reporter.Stats())
		return
	}
	s.reporter.Logf("[INFO] fetch stats: %s, queued %d", s.reporter.Stats(), waiting)
}
