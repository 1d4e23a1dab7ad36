package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/rssfetcher/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed row
type feedSQL struct {
	ID               int64          `db:"id"`
	URL              string         `db:"url"`
	SourceID         int64          `db:"source_id"`
	Name             string         `db:"name"`
	Active           bool           `db:"active"`
	Queued           bool           `db:"queued"`
	LastFetchSuccess sql.NullTime   `db:"last_fetch_success"`
	LastFetchHash    sql.NullString `db:"last_fetch_hash"`
	NextFetchAttempt time.Time      `db:"next_fetch_attempt"`
	CreatedAt        time.Time      `db:"created_at"`
}

const feedColumns = `id, url, source_id, name, active, queued, last_fetch_success, last_fetch_hash,
	next_fetch_attempt, created_at`

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// CreateFeed inserts a new feed. A zero ID is assigned by the database.
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	return r.insertFeed(ctx, r.db, feed)
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var row feedSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+feedColumns+" FROM feeds WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get feed %d: %w", id, domain.ErrFeedNotFound)
		}
		return nil, fmt.Errorf("get feed %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// GetFeeds retrieves feeds matching the filter, ordered by next fetch attempt
func (r *FeedRepository) GetFeeds(ctx context.Context, filter domain.FeedFilter) ([]domain.Feed, error) {
	where, args := filterClause(filter)
	query := "SELECT " + feedColumns + " FROM feeds" + where + " ORDER BY next_fetch_attempt ASC, id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var rows []feedSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}

	feeds := make([]domain.Feed, len(rows))
	for i := range rows {
		feeds[i] = *rows[i].toDomain()
	}
	return feeds, nil
}

// GetFeedsToFetch retrieves feeds eligible for dispatch: active, not queued and due.
// Inactive feeds are never returned, whatever their next_fetch_attempt is.
func (r *FeedRepository) GetFeedsToFetch(ctx context.Context, now time.Time, limit int) ([]domain.Feed, error) {
	return r.GetFeeds(ctx, domain.FeedFilter{ActiveOnly: true, ExcludeQueued: true, DueBefore: now, Limit: limit})
}

// MarkFetched records a successful changed fetch, hash and success time, in one update
func (r *FeedRepository) MarkFetched(ctx context.Context, feedID int64, fetchedAt time.Time, hash string) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"UPDATE feeds SET last_fetch_success = ?, last_fetch_hash = ? WHERE id = ?",
			fetchedAt.UTC(), hash, feedID)
		if err != nil {
			return fmt.Errorf("mark feed %d fetched: %w", feedID, err)
		}
		return nil
	})
}

// MarkQueued sets the queued flag if it is not set yet.
// Returns false if the feed was already queued or doesn't exist.
func (r *FeedRepository) MarkQueued(ctx context.Context, feedID int64) (bool, error) {
	var affected int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE feeds SET queued = 1 WHERE id = ? AND queued = 0", feedID)
		if err != nil {
			return fmt.Errorf("mark feed %d queued: %w", feedID, err)
		}
		if affected, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		return nil
	})
	return affected > 0, err
}

// CompleteFetch clears the queued flag and sets the next regular attempt
func (r *FeedRepository) CompleteFetch(ctx context.Context, feedID int64, nextAttempt time.Time) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"UPDATE feeds SET queued = 0, next_fetch_attempt = ? WHERE id = ?", nextAttempt.UTC(), feedID)
		if err != nil {
			return fmt.Errorf("complete fetch for feed %d: %w", feedID, err)
		}
		return nil
	})
}

// ResetQueued clears all queued flags, returns number of released feeds
func (r *FeedRepository) ResetQueued(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE feeds SET queued = 0 WHERE queued = 1")
	if err != nil {
		return 0, fmt.Errorf("reset queued: %w", err)
	}
	return res.RowsAffected()
}

// SetActive enables or disables a feed, an unknown id is domain.ErrFeedNotFound
func (r *FeedRepository) SetActive(ctx context.Context, feedID int64, active bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE feeds SET active = ? WHERE id = ?", active, feedID)
	if err != nil {
		return fmt.Errorf("set feed %d active: %w", feedID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set feed %d active: %w", feedID, err)
	}
	if n == 0 {
		return fmt.Errorf("set feed %d active: %w", feedID, domain.ErrFeedNotFound)
	}
	return nil
}

// RescheduleFeeds sets next_fetch_attempt for every feed matching the filter to next(feedID),
// in one transaction. Returns the number of updated feeds, zero matches is not an error.
func (r *FeedRepository) RescheduleFeeds(ctx context.Context, filter domain.FeedFilter,
	next func(feedID int64) time.Time) (int64, error) {
	var count int64
	err := withRetry(ctx, func() error {
		count = 0
		return r.inTransaction(ctx, func(tx *sqlx.Tx) error {
			where, args := filterClause(filter)
			query := "SELECT id FROM feeds" + where + " ORDER BY id"
			if filter.Limit > 0 {
				query += " LIMIT ?"
				args = append(args, filter.Limit)
			}
			var ids []int64
			if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
				return fmt.Errorf("select feeds to reschedule: %w", err)
			}

			stmt, err := tx.PreparexContext(ctx, "UPDATE feeds SET next_fetch_attempt = ? WHERE id = ?")
			if err != nil {
				return fmt.Errorf("prepare reschedule: %w", err)
			}
			defer stmt.Close()

			for _, id := range ids {
				if _, err := stmt.ExecContext(ctx, next(id).UTC(), id); err != nil {
					return fmt.Errorf("reschedule feed %d: %w", id, err)
				}
				count++
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceAll removes all stories and feeds and inserts the given feeds, in one transaction.
// This is the bulk reset used by imports.
func (r *FeedRepository) ReplaceAll(ctx context.Context, feeds []domain.Feed) (int, error) {
	added := 0
	err := r.inTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM stories"); err != nil {
			return fmt.Errorf("delete stories: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM feeds"); err != nil {
			return fmt.Errorf("delete feeds: %w", err)
		}
		for i := range feeds {
			if err := r.insertFeed(ctx, tx, &feeds[i]); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// CountFeeds returns the number of feeds matching the filter
func (r *FeedRepository) CountFeeds(ctx context.Context, filter domain.FeedFilter) (int64, error) {
	where, args := filterClause(filter)
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM feeds"+where, args...); err != nil {
		return 0, fmt.Errorf("count feeds: %w", err)
	}
	return count, nil
}

func (r *FeedRepository) insertFeed(ctx context.Context, ext sqlx.ExtContext, feed *domain.Feed) error {
	if feed.CreatedAt.IsZero() {
		feed.CreatedAt = time.Now().UTC()
	}
	row := fromDomainFeed(feed)

	query := `INSERT INTO feeds (url, source_id, name, active, queued, last_fetch_success, last_fetch_hash,
			next_fetch_attempt, created_at)
		VALUES (:url, :source_id, :name, :active, :queued, :last_fetch_success, :last_fetch_hash,
			:next_fetch_attempt, :created_at)`
	if feed.ID != 0 {
		query = `INSERT INTO feeds (id, url, source_id, name, active, queued, last_fetch_success, last_fetch_hash,
			next_fetch_attempt, created_at)
		VALUES (:id, :url, :source_id, :name, :active, :queued, :last_fetch_success, :last_fetch_hash,
			:next_fetch_attempt, :created_at)`
	}

	result, err := sqlx.NamedExecContext(ctx, ext, query, row)
	if err != nil {
		return fmt.Errorf("insert feed %s: %w", feed.URL, err)
	}
	if feed.ID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		feed.ID = id
	}
	return nil
}

// inTransaction executes a function within a database transaction
func (r *FeedRepository) inTransaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback also failed: %s)", err, rbErr.Error())
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// filterClause builds a WHERE clause with positional args for the filter
func filterClause(filter domain.FeedFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.SourceID != 0 {
		conds = append(conds, "source_id = ?")
		args = append(args, filter.SourceID)
	}
	if filter.ActiveOnly {
		conds = append(conds, "active = 1")
	}
	if filter.ExcludeQueued {
		conds = append(conds, "queued = 0")
	}
	if !filter.DueBefore.IsZero() {
		conds = append(conds, "next_fetch_attempt <= ?")
		args = append(args, filter.DueBefore.UTC())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (f *feedSQL) toDomain() *domain.Feed {
	res := &domain.Feed{
		ID:               f.ID,
		URL:              f.URL,
		SourceID:         f.SourceID,
		Name:             f.Name,
		Active:           f.Active,
		Queued:           f.Queued,
		LastFetchHash:    f.LastFetchHash.String,
		NextFetchAttempt: f.NextFetchAttempt,
		CreatedAt:        f.CreatedAt,
	}
	if f.LastFetchSuccess.Valid {
		ts := f.LastFetchSuccess.Time
		res.LastFetchSuccess = &ts
	}
	return res
}

func fromDomainFeed(f *domain.Feed) feedSQL {
	row := feedSQL{
		ID:               f.ID,
		URL:              f.URL,
		SourceID:         f.SourceID,
		Name:             f.Name,
		Active:           f.Active,
		Queued:           f.Queued,
		LastFetchHash:    sql.NullString{String: f.LastFetchHash, Valid: f.LastFetchHash != ""},
		NextFetchAttempt: f.NextFetchAttempt.UTC(),
		CreatedAt:        f.CreatedAt.UTC(),
	}
	if f.LastFetchSuccess != nil {
		row.LastFetchSuccess = sql.NullTime{Time: f.LastFetchSuccess.UTC(), Valid: true}
	}
	return row
}
