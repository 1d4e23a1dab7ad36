package fetcher

import "fmt"

// TransportError is a failure to get a response at all: dns, connection, timeout
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError is a response with a non-200 status
type HTTPStatusError struct {
	URL    string
	Status int
}

func (e *HTTPStatusError) Error() string { return fmt.Sprintf("fetch %s: http status %d", e.URL, e.Status) }

// UnexpectedError is any other failure caught at the worker boundary, recovered panics included
type UnexpectedError struct {
	Stage string
	Err   error
}

func (e *UnexpectedError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }

func (e *UnexpectedError) Unwrap() error { return e.Err }
