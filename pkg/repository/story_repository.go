package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/rssfetcher/pkg/domain"
)

// StoryRepository handles story-related database operations
type StoryRepository struct {
	db *sqlx.DB
}

// storySQL represents a story row
type storySQL struct {
	ID          int64        `db:"id"`
	FeedID      int64        `db:"feed_id"`
	SourceID    int64        `db:"source_id"`
	URL         string       `db:"url"`
	Title       string       `db:"title"`
	FetchedAt   time.Time    `db:"fetched_at"`
	PublishedAt sql.NullTime `db:"published_at"`
}

// DayField selects the timestamp used for per-day story counts
type DayField string

// day fields
const (
	DayFetched   DayField = "fetched_at"
	DayPublished DayField = "published_at"
)

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *sqlx.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// InsertStory inserts a single story in its own statement.
// Returns domain.ErrDuplicateStory if the url already exists for the feed.
func (r *StoryRepository) InsertStory(ctx context.Context, story *domain.Story) error {
	row := storySQL{
		FeedID:    story.FeedID,
		SourceID:  story.SourceID,
		URL:       story.URL,
		Title:     story.Title,
		FetchedAt: story.FetchedAt.UTC(),
	}
	if story.PublishedAt != nil {
		row.PublishedAt = sql.NullTime{Time: story.PublishedAt.UTC(), Valid: true}
	}

	query := `INSERT INTO stories (feed_id, source_id, url, title, fetched_at, published_at)
		VALUES (:feed_id, :source_id, :url, :title, :fetched_at, :published_at)`

	return withRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert story %s: %w", story.URL, domain.ErrDuplicateStory)
			}
			return fmt.Errorf("insert story %s: %w", story.URL, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		story.ID = id
		return nil
	})
}

// GetStoriesByFeed returns the most recently fetched stories of a feed
func (r *StoryRepository) GetStoriesByFeed(ctx context.Context, feedID int64, limit int) ([]domain.Story, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, feed_id, source_id, url, title, fetched_at, published_at
		FROM stories WHERE feed_id = ? ORDER BY fetched_at DESC, id DESC LIMIT ?`

	var rows []storySQL
	if err := r.db.SelectContext(ctx, &rows, query, feedID, limit); err != nil {
		return nil, fmt.Errorf("get stories for feed %d: %w", feedID, err)
	}

	stories := make([]domain.Story, len(rows))
	for i, row := range rows {
		stories[i] = domain.Story{
			ID:        row.ID,
			FeedID:    row.FeedID,
			SourceID:  row.SourceID,
			URL:       row.URL,
			Title:     row.Title,
			FetchedAt: row.FetchedAt,
		}
		if row.PublishedAt.Valid {
			ts := row.PublishedAt.Time
			stories[i].PublishedAt = &ts
		}
	}
	return stories, nil
}

// CountStories returns number of stories for a feed, or all stories if feedID is 0
func (r *StoryRepository) CountStories(ctx context.Context, feedID int64) (int64, error) {
	var count int64
	var err error
	if feedID == 0 {
		err = r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM stories")
	} else {
		err = r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM stories WHERE feed_id = ?", feedID)
	}
	if err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return count, nil
}

// CountStoriesByDay returns per-day story counts for a source, grouped by the given timestamp field.
// Stories without the timestamp are not counted. sourceID 0 counts all sources.
func (r *StoryRepository) CountStoriesByDay(ctx context.Context, sourceID int64, field DayField) ([]domain.DayCount, error) {
	if field != DayFetched && field != DayPublished {
		return nil, fmt.Errorf("invalid day field %q", field)
	}

	col := string(field)
	query := "SELECT substr(" + col + ", 1, 10) AS date, COUNT(*) AS count FROM stories WHERE " + col + " IS NOT NULL"
	var args []any
	if sourceID != 0 {
		query += " AND source_id = ?"
		args = append(args, sourceID)
	}
	query += " GROUP BY date ORDER BY date"

	var res []struct {
		Date  string `db:"date"`
		Count int64  `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &res, query, args...); err != nil {
		return nil, fmt.Errorf("count stories by day: %w", err)
	}

	counts := make([]domain.DayCount, len(res))
	for i, c := range res {
		counts[i] = domain.DayCount{Date: c.Date, Count: c.Count}
	}
	return counts, nil
}
