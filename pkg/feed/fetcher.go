package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultMaxBodySize = 20 * 1024 * 1024

// ErrBodyTooLarge is returned when a response body exceeds the configured limit
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPFetcher retrieves raw feed documents via HTTP GET with a bounded timeout
type HTTPFetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// NewHTTPFetcher creates a new feed fetcher. The timeout bounds the whole request,
// including reading the body.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout:     timeout,
		userAgent:   userAgent,
		maxBodySize: defaultMaxBodySize,
	}
}

// WithMaxBodySize limits how many bytes of a response body are read, a larger body is an error
func (f *HTTPFetcher) WithMaxBodySize(n int64) *HTTPFetcher {
	if n > 0 {
		f.maxBodySize = n
	}
	return f
}

// Get fetches the url and returns status code and raw body.
// The error is non-nil only for transport-level failures (timeout, dns, reset) and for a body
// over the size limit; non-200 responses are returned as a status code with a nil error.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (status int, body []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return resp.StatusCode, nil, nil
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w, limit %d bytes", ErrBodyTooLarge, f.maxBodySize)
	}
	return resp.StatusCode, body, nil
}
