// Package telemetry reports fetch outcomes and errors through an injected logger
// and keeps in-memory outcome counters.
package telemetry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rssfetcher/pkg/domain"
)

// Reporter is the logging and error sink used by fetch workers and the scheduler.
// It is safe for concurrent use.
type Reporter struct {
	log lgr.L

	mu       sync.Mutex
	outcomes map[domain.FetchOutcome]int64
	failures map[int64]int // consecutive failed attempts per feed
	errors   int64
}

// Stats is a snapshot of reporter counters
type Stats struct {
	Outcomes      map[string]int64
	Errors        int64
	FailingFeeds  int
	MaxConsecFail int
}

// NewReporter makes a reporter logging to l, lgr.Std used if l is nil
func NewReporter(l lgr.L) *Reporter {
	if l == nil {
		l = lgr.Std
	}
	return &Reporter{
		log:      l,
		outcomes: make(map[domain.FetchOutcome]int64),
		failures: make(map[int64]int),
	}
}

// Logf passes the message to the underlying logger
func (r *Reporter) Logf(format string, args ...any) {
	r.log.Logf(format, args...)
}

// Record counts the outcome of a fetch attempt and logs it with the level matching the outcome.
// A failed outcome increments the consecutive-failure counter of the feed, a success resets it.
func (r *Reporter) Record(feedID int64, outcome domain.FetchOutcome, err error) {
	r.mu.Lock()
	r.outcomes[outcome]++
	fails := 0
	if outcome.Failed() {
		r.failures[feedID]++
		fails = r.failures[feedID]
	} else {
		delete(r.failures, feedID)
	}
	r.mu.Unlock()

	switch outcome {
	case domain.OutcomeChanged, domain.OutcomeUnchanged:
		r.log.Logf("[DEBUG] feed %d: %s", feedID, outcome)
	case domain.OutcomeUnexpectedError:
		r.log.Logf("[ERROR] feed %d: %s, %v (consecutive failures: %d)", feedID, outcome, err, fails)
	default:
		r.log.Logf("[WARN] feed %d: %s, %v (consecutive failures: %d)", feedID, outcome, err, fails)
	}
}

// ReportError logs an error not tied to a fetch outcome, like a failed dispatch step
func (r *Reporter) ReportError(err error, format string, args ...any) {
	if err == nil {
		return
	}
	r.mu.Lock()
	r.errors++
	r.mu.Unlock()
	r.log.Logf("[ERROR] %s: %v", fmt.Sprintf(format, args...), err)
}

// Stats returns a snapshot of counters
func (r *Reporter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := Stats{Outcomes: make(map[string]int64, len(r.outcomes)), Errors: r.errors, FailingFeeds: len(r.failures)}
	for k, v := range r.outcomes {
		res.Outcomes[k.String()] = v
	}
	for _, v := range r.failures {
		res.MaxConsecFail = max(res.MaxConsecFail, v)
	}
	return res
}

// String returns a single-line summary, outcomes sorted by name
func (s Stats) String() string {
	keys := make([]string, 0, len(s.Outcomes))
	for k := range s.Outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+3)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s.Outcomes[k]))
	}
	parts = append(parts, fmt.Sprintf("errors=%d", s.Errors), fmt.Sprintf("failing-feeds=%d", s.FailingFeeds),
		fmt.Sprintf("max-consecutive-failures=%d", s.MaxConsecFail))
	return strings.Join(parts, ", ")
}
