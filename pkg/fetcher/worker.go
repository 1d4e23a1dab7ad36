// Package fetcher implements the per-feed fetch workflow: get, fingerprint, compare,
// record the change, parse and insert stories one by one.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/umputun/rssfetcher/pkg/domain"
	"github.com/umputun/rssfetcher/pkg/feed"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/story_store.go -pkg mocks -skip-ensure -fmt goimports . StoryStore
//go:generate moq -out mocks/getter.go -pkg mocks -skip-ensure -fmt goimports . Getter
//go:generate moq -out mocks/entry_parser.go -pkg mocks -skip-ensure -fmt goimports . EntryParser
//go:generate moq -out mocks/reporter.go -pkg mocks -skip-ensure -fmt goimports . Reporter

// FeedStore records a changed fetch on the feed row
type FeedStore interface {
	MarkFetched(ctx context.Context, feedID int64, fetchedAt time.Time, hash string) error
}

// StoryStore inserts a single story, returning domain.ErrDuplicateStory for a seen url
type StoryStore interface {
	InsertStory(ctx context.Context, story *domain.Story) error
}

// Getter performs http GET with a bounded timeout
type Getter interface {
	Get(ctx context.Context, url string) (status int, body []byte, err error)
}

// EntryParser extracts entries from a raw feed document
type EntryParser interface {
	Parse(body []byte) ([]domain.Entry, error)
}

// Reporter is the logging and outcome sink
type Reporter interface {
	Logf(format string, args ...any)
	Record(feedID int64, outcome domain.FetchOutcome, err error)
}

// Params defines worker dependencies
type Params struct {
	Feeds    FeedStore
	Stories  StoryStore
	Getter   Getter
	Parser   EntryParser
	Reporter Reporter
	Now      func() time.Time // defaults to time.Now
}

// Worker runs one fetch attempt per feed. Failures never propagate out of Fetch,
// they are returned as Result.Outcome and Result.Err.
type Worker struct {
	feeds    FeedStore
	stories  StoryStore
	getter   Getter
	parser   EntryParser
	reporter Reporter
	now      func() time.Time
}

// Result is the outcome of a single fetch attempt
type Result struct {
	FeedID     int64
	Outcome    domain.FetchOutcome
	Err        error
	Hash       string // fingerprint of the fetched body, empty if nothing was fetched
	Entries    int    // parsed entries
	Inserted   int    // new stories
	Duplicates int    // entries already stored for the feed
	Skipped    int    // entries without url
}

// NewWorker makes a worker from params
func NewWorker(p Params) *Worker {
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Worker{
		feeds:    p.Feeds,
		stories:  p.Stories,
		getter:   p.Getter,
		parser:   p.Parser,
		reporter: p.Reporter,
		now:      p.Now,
	}
}

// Fetch performs one fetch attempt for the feed snapshot and reports the outcome.
// The hash and success time are committed before parsing, so a parse or insert failure
// leaves the feed marked as fetched.
func (w *Worker) Fetch(ctx context.Context, f domain.Feed) (res Result) {
	res = Result{FeedID: f.ID}
	defer func() {
		if r := recover(); r != nil {
			w.reporter.Logf("[ERROR] panic fetching feed %d %s: %v\n%s", f.ID, f.URL, r, debug.Stack())
			res.Outcome = domain.OutcomeUnexpectedError
			res.Err = &UnexpectedError{Stage: "panic", Err: fmt.Errorf("%v", r)}
		}
		w.reporter.Record(f.ID, res.Outcome, res.Err)
	}()

	w.reporter.Logf("[DEBUG] fetching feed %d: %s", f.ID, f.URL)
	status, body, err := w.getter.Get(ctx, f.URL)
	if err != nil {
		res.Outcome, res.Err = domain.OutcomeTransportError, &TransportError{URL: f.URL, Err: err}
		return res
	}
	if status != http.StatusOK {
		res.Outcome, res.Err = domain.OutcomeHTTPError, &HTTPStatusError{URL: f.URL, Status: status}
		return res
	}

	res.Hash = feed.Fingerprint(body)
	if res.Hash == f.LastFetchHash {
		w.reporter.Logf("[DEBUG] feed %d unchanged", f.ID)
		res.Outcome = domain.OutcomeUnchanged
		return res
	}

	// the fetch succeeded, storing is not canceled from here on
	storeCtx := context.WithoutCancel(ctx)
	if err := w.feeds.MarkFetched(storeCtx, f.ID, w.now().UTC(), res.Hash); err != nil {
		res.Outcome, res.Err = domain.OutcomeUnexpectedError, &UnexpectedError{Stage: "mark fetched", Err: err}
		return res
	}

	entries, err := w.parser.Parse(body)
	if err != nil {
		res.Outcome, res.Err = domain.OutcomeUnexpectedError, &UnexpectedError{Stage: "parse", Err: err}
		return res
	}
	res.Entries = len(entries)

	fetchedAt := w.now().UTC()
	for _, e := range entries {
		if e.URL == "" {
			w.reporter.Logf("[DEBUG] feed %d: skip entry without url %q", f.ID, e.Title)
			res.Skipped++
			continue
		}
		story := &domain.Story{
			FeedID:      f.ID,
			SourceID:    f.SourceID,
			URL:         e.URL,
			Title:       e.Title,
			FetchedAt:   fetchedAt,
			PublishedAt: e.PublishedAt,
		}
		if err := w.stories.InsertStory(storeCtx, story); err != nil {
			if errors.Is(err, domain.ErrDuplicateStory) {
				w.reporter.Logf("[DEBUG] feed %d: duplicate story %s", f.ID, e.URL)
				res.Duplicates++
				continue
			}
			res.Outcome, res.Err = domain.OutcomeUnexpectedError, &UnexpectedError{Stage: "insert story", Err: err}
			return res
		}
		res.Inserted++
	}

	w.reporter.Logf("[INFO] feed %d changed, %d entries, %d new, %d duplicates, %d skipped",
		f.ID, res.Entries, res.Inserted, res.Duplicates, res.Skipped)
	res.Outcome = domain.OutcomeChanged
	return res
}

// FetchBatch fetches feeds concurrently, up to workers at a time, and returns results in feeds order.
// A failure of one feed never affects the others.
func (w *Worker) FetchBatch(ctx context.Context, feeds []domain.Feed, workers int) []Result {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(feeds))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range feeds {
		g.Go(func() error {
			results[i] = w.Fetch(ctx, f)
			return nil
		})
	}
	_ = g.Wait() // fetch never returns errors to the group
	return results
}
