package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/rssfetcher/pkg/domain"
)

// Parser turns raw RSS/Atom/JSON feed bytes into entries
type Parser struct{}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw feed content. Entries keep the document order.
func (p *Parser) Parse(body []byte) ([]domain.Entry, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := make([]domain.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := domain.Entry{
			URL:   entryURL(item),
			Title: strings.TrimSpace(item.Title),
		}

		// published time, falling back to updated
		if item.PublishedParsed != nil {
			ts := item.PublishedParsed.UTC()
			entry.PublishedAt = &ts
		} else if item.UpdatedParsed != nil {
			ts := item.UpdatedParsed.UTC()
			entry.PublishedAt = &ts
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// entryURL picks the story url: the link, or a permalink guid if no link given
func entryURL(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, l := range item.Links {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	if guid := strings.TrimSpace(item.GUID); strings.HasPrefix(guid, "http://") || strings.HasPrefix(guid, "https://") {
		return guid
	}
	return ""
}
