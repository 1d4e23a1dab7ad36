package domain

import (
	"errors"
	"time"
)

// ErrDuplicateStory is returned when a story URL already exists for the feed.
// It is an expected outcome of re-ingesting a feed, not a failure.
var ErrDuplicateStory = errors.New("duplicate story")

// ErrFeedNotFound is returned when a feed id does not exist
var ErrFeedNotFound = errors.New("feed not found")

// Story represents one ingested entry extracted from a feed fetch
type Story struct {
	ID          int64
	FeedID      int64
	SourceID    int64
	URL         string
	Title       string
	FetchedAt   time.Time
	PublishedAt *time.Time
}

// Entry is a single parsed feed entry, the raw material for a Story
type Entry struct {
	URL         string
	Title       string
	PublishedAt *time.Time
}

// DayCount is a number of stories for a calendar day (UTC)
type DayCount struct {
	Date  string
	Count int64
}
