package feed

import (
	"math/rand/v2"
	"net/http"
)

const feedAccept = "application/rss+xml,application/atom+xml,application/feed+json," +
	"application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5"

// acceptLanguages rotates between common values, some origins reject requests without one
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.8,es;q=0.6",
	"en-US,en;q=0.8,fr;q=0.6",
}

// addBrowserHeaders sets headers a feed reader would send.
// Caching headers are never sent, the fingerprint check needs the full body on each fetch.
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", feedAccept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.IntN(len(acceptLanguages))]) //nolint:gosec // header variation only
}
