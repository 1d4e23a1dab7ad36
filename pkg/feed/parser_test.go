package feed

import (
	"testing"

	"github.com/mmcdole/gofeed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	parser := NewParser()

	t.Run("rss", func(t *testing.T) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Test Feed</title>
		<link>https://example.com</link>
		<item>
			<title> Article 1 </title>
			<link>https://example.com/article1</link>
			<guid>article1</guid>
			<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		</item>
		<item>
			<title>Article 2</title>
			<guid isPermaLink="true">https://example.com/article2</guid>
		</item>
		<item>
			<title>No link</title>
			<guid>opaque-id</guid>
		</item>
	</channel>
</rss>`
		entries, err := parser.Parse([]byte(rss))
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "Article 1", entries[0].Title)
		assert.Equal(t, "https://example.com/article1", entries[0].URL)
		require.NotNil(t, entries[0].PublishedAt)
		assert.Equal(t, "2006-01-02T22:04:05Z", entries[0].PublishedAt.Format("2006-01-02T15:04:05Z07:00"))

		assert.Equal(t, "https://example.com/article2", entries[1].URL)
		assert.Nil(t, entries[1].PublishedAt)

		assert.Equal(t, "No link", entries[2].Title)
	})

	t.Run("atom with updated only", func(t *testing.T) {
		atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom</title>
	<entry>
		<title>Entry 1</title>
		<link href="https://example.com/entry1"/>
		<id>entry1</id>
		<updated>2006-01-02T15:04:05Z</updated>
	</entry>
</feed>`
		entries, err := parser.Parse([]byte(atom))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "https://example.com/entry1", entries[0].URL)
		require.NotNil(t, entries[0].PublishedAt)
		assert.Equal(t, 2006, entries[0].PublishedAt.Year())
	})

	t.Run("invalid content", func(t *testing.T) {
		entries, err := parser.Parse([]byte("not xml content"))
		require.Error(t, err)
		assert.Nil(t, entries)
	})
}

func TestEntryURL(t *testing.T) {
	tests := []struct {
		name string
		item gofeed.Item
		want string
	}{
		{"link", gofeed.Item{Link: " https://example.com/a ", GUID: "https://example.com/b"}, "https://example.com/a"},
		{"links", gofeed.Item{Links: []string{"", "https://example.com/c"}}, "https://example.com/c"},
		{"permalink guid", gofeed.Item{GUID: "https://example.com/d"}, "https://example.com/d"},
		{"opaque guid", gofeed.Item{GUID: "tag:example.com,2024:1"}, ""},
		{"empty", gofeed.Item{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entryURL(&tt.item))
		})
	}
}
