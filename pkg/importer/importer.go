// Package importer loads the feed list from a csv file, replacing all feeds and stories.
package importer

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rssfetcher/pkg/domain"
	"github.com/umputun/rssfetcher/pkg/schedule"
)

// Store replaces all feeds (and their stories) in one transaction
type Store interface {
	ReplaceAll(ctx context.Context, feeds []domain.Feed) (int, error)
}

// Importer reads csv rows with id, url, sources_id and name columns into active feeds.
// Each feed gets a random first attempt within the default interval.
type Importer struct {
	store  Store
	policy *schedule.Policy
	now    func() time.Time
}

// New makes an importer
func New(store Store, policy *schedule.Policy) *Importer {
	return &Importer{store: store, policy: policy, now: time.Now}
}

// ImportFile imports from a csv file, gzip-compressed if the name ends with .gz
func (im *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	fh, err := os.Open(path) //nolint:gosec // path is an operator-provided cli argument
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	var r io.Reader = fh
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(fh)
		if err != nil {
			return 0, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	lgr.Printf("[INFO] importing feeds from %s", path)
	return im.Import(ctx, r)
}

// Import reads all rows and replaces stored feeds with them. Nothing is changed if any row is invalid.
func (im *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	feeds, err := im.readFeeds(r)
	if err != nil {
		return 0, err
	}

	lgr.Printf("[INFO] clearing database, %d feeds to import", len(feeds))
	added, err := im.store.ReplaceAll(ctx, feeds)
	if err != nil {
		return 0, fmt.Errorf("replace feeds: %w", err)
	}
	lgr.Printf("[INFO] imported %d rows", added)
	return added, nil
}

func (im *Importer) readFeeds(r io.Reader) ([]domain.Feed, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"id", "url", "sources_id"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	field := func(rec []string, name string) string {
		if i, ok := cols[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var feeds []domain.Feed
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		id, err := strconv.ParseInt(field(rec, "id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad id: %w", line, err)
		}
		url := field(rec, "url")
		if url == "" {
			return nil, fmt.Errorf("line %d: empty url", line)
		}
		sourceID, err := strconv.ParseInt(field(rec, "sources_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad sources_id: %w", line, err)
		}
		if sourceID <= 0 {
			return nil, fmt.Errorf("line %d: sources_id must be positive, got %d", line, sourceID)
		}

		now := im.now().UTC()
		feeds = append(feeds, domain.Feed{
			ID:               id,
			URL:              url,
			SourceID:         sourceID,
			Name:             field(rec, "name"),
			Active:           true,
			CreatedAt:        now,
			NextFetchAttempt: im.policy.InitialAttempt(now),
		})
	}
	return feeds, nil
}
