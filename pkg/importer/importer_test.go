package importer

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rssfetcher/pkg/domain"
	"github.com/umputun/rssfetcher/pkg/repository"
	"github.com/umputun/rssfetcher/pkg/schedule"
)

const testCSV = `id,url,sources_id,name
1,https://example.com/a.xml,100,Feed A
2,https://example.com/b.xml,100,Feed B
3,https://example.com/c.xml,200,Feed C
`

type storeFunc func(ctx context.Context, feeds []domain.Feed) (int, error)

func (f storeFunc) ReplaceAll(ctx context.Context, feeds []domain.Feed) (int, error) { return f(ctx, feeds) }

func fixedImporter(store Store, rnd float64) *Importer {
	im := New(store, schedule.NewPolicy(schedule.Config{}, schedule.WithRand(func() float64 { return rnd })))
	im.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return im
}

func TestImporter_Import(t *testing.T) {
	var got []domain.Feed
	store := storeFunc(func(_ context.Context, feeds []domain.Feed) (int, error) {
		got = feeds
		return len(feeds), nil
	})

	added, err := fixedImporter(store, 0.5).Import(context.Background(), strings.NewReader(testCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	require.Len(t, got, 3)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "https://example.com/a.xml", got[0].URL)
	assert.Equal(t, int64(100), got[0].SourceID)
	assert.Equal(t, "Feed A", got[0].Name)
	assert.True(t, got[0].Active)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC), got[0].NextFetchAttempt)
	assert.Equal(t, int64(200), got[2].SourceID)
}

func TestImporter_ImportErrors(t *testing.T) {
	store := storeFunc(func(context.Context, []domain.Feed) (int, error) {
		t.Fatal("store must not be called")
		return 0, nil
	})
	im := fixedImporter(store, 0)

	tbl := []struct {
		name, csv string
	}{
		{"empty", ""},
		{"no url column", "id,sources_id,name\n1,1,x\n"},
		{"no sources_id column", "id,url\n1,https://example.com\n"},
		{"bad id", "id,url,sources_id\nabc,https://example.com,1\n"},
		{"empty url", "id,url,sources_id\n1,,1\n"},
		{"bad source", "id,url,sources_id\n1,https://example.com,x\n"},
		{"blank source", "id,url,sources_id\n1,https://example.com/a,1\n2,https://example.com/b,\n"},
		{"zero source", "id,url,sources_id\n1,https://example.com,0\n"},
		{"negative source", "id,url,sources_id\n1,https://example.com,-5\n"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			_, err := im.Import(context.Background(), strings.NewReader(tt.csv))
			require.Error(t, err)
		})
	}
}

func TestImporter_ImportFile(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(),
		repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	// existing data is replaced
	require.NoError(t, repos.Feed.CreateFeed(context.Background(),
		&domain.Feed{ID: 99, URL: "https://example.com/old.xml", Active: true, NextFetchAttempt: time.Now()}))

	dir := t.TempDir()
	plain := filepath.Join(dir, "feeds.csv")
	require.NoError(t, os.WriteFile(plain, []byte(testCSV), 0o600))

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err = gw.Write([]byte(testCSV))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	zipped := filepath.Join(dir, "feeds.csv.gz")
	require.NoError(t, os.WriteFile(zipped, gzBuf.Bytes(), 0o600))

	im := New(repos.Feed, schedule.NewPolicy(schedule.Config{}))
	for _, path := range []string{plain, zipped} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			start := time.Now().UTC()
			added, err := im.ImportFile(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, 3, added)

			feeds, err := repos.Feed.GetFeeds(context.Background(), domain.FeedFilter{})
			require.NoError(t, err)
			require.Len(t, feeds, 3)
			for _, f := range feeds {
				assert.NotEqual(t, int64(99), f.ID)
				assert.False(t, f.NextFetchAttempt.Before(start.Add(-time.Second)))
				assert.False(t, f.NextFetchAttempt.After(start.Add(61*time.Minute)))
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := im.ImportFile(context.Background(), filepath.Join(dir, "nope.csv"))
		require.Error(t, err)
	})
}
