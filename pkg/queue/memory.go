package queue

import (
	"context"
	"sync"
)

// Memory is an in-process bounded queue backed by a buffered channel
type Memory struct {
	ch        chan int64
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemory makes a memory queue holding up to size ids, size below 1 set to 1
func NewMemory(size int) *Memory {
	if size < 1 {
		size = 1
	}
	return &Memory{ch: make(chan int64, size), done: make(chan struct{})}
}

// Enqueue adds feed id, blocks while the queue is full
func (q *Memory) Enqueue(ctx context.Context, feedID int64) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}

	select {
	case q.ch <- feedID:
		return nil
	case <-q.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume blocks until an id is available, the context is canceled or the queue is closed
func (q *Memory) Consume(ctx context.Context) (int64, error) {
	select {
	case id := <-q.ch:
		return id, nil
	case <-q.done:
		return 0, ErrClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Len returns number of waiting ids
func (q *Memory) Len(context.Context) (int64, error) {
	return int64(len(q.ch)), nil
}

// Close unblocks all waiting producers and consumers
func (q *Memory) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}
