package mail

import (
	"context"
	"sync"
)

// Queue is a FIFO of outbound messages.
type Queue interface {
	Enqueue(ctx context.Context, msg Message) error

	// Dequeue blocks until a message is available, the driver's poll timeout
	// elapses (ErrEmpty) or ctx is done.
	Dequeue(ctx context.Context) (Message, error)
}

// MemoryQueue is an in-process Queue backed by a buffered channel. It is
// used when no redis address is configured and in tests.
type MemoryQueue struct {
	ch        chan Message
	closeOnce sync.Once
	done      chan struct{}
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 256
	}
	return &MemoryQueue{
		ch:   make(chan Message, size),
		done: make(chan struct{}),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	select {
	case <-q.done:
		return ErrClosed
	default:
	}

	select {
	case q.ch <- msg:
		return nil
	case <-q.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Message, error) {
	select {
	case msg := <-q.ch:
		return msg, nil
	case <-q.done:
		return Message{}, ErrClosed
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

// Len is the number of queued messages.
func (q *MemoryQueue) Len() int { return len(q.ch) }

// Close makes further Enqueue and Dequeue calls fail with ErrClosed.
func (q *MemoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}
