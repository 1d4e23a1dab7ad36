// Package queue provides dispatch queues of feed ids between the scheduler and fetch consumers.
// Delivery is at-least-once at best, consumers must tolerate duplicates.
package queue

import "errors"

// ErrClosed is returned by operations on a closed queue
var ErrClosed = errors.New("queue closed")
