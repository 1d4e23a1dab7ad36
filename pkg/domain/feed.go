package domain

import "time"

// Feed represents a subscribed syndication feed polled on a schedule
type Feed struct {
	ID               int64
	URL              string
	SourceID         int64
	Name             string
	Active           bool
	Queued           bool       // true while a fetch job for the feed is outstanding
	LastFetchSuccess *time.Time // time of the last fetch with changed content
	LastFetchHash    string     // fingerprint of the last changed content, empty if never fetched
	NextFetchAttempt time.Time
	CreatedAt        time.Time
}

// FeedFilter selects feeds for queries and bulk reschedules.
// Zero values mean "no restriction" for every field.
type FeedFilter struct {
	SourceID      int64
	ActiveOnly    bool
	ExcludeQueued bool
	DueBefore     time.Time // only feeds with next_fetch_attempt <= DueBefore
	Limit         int
}
