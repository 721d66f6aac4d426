package testutils

import (
	"context"
	"sync"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

// MemQueue is an in-memory queue.Queue.
type MemQueue struct {
	mu        sync.Mutex
	published []types.DeriveRequest
	msgs      chan types.DeriveRequest
	closed    bool

	// PublishErr, when set, is returned by Publish.
	PublishErr error
}

var _ queue.Queue = (*MemQueue)(nil)

func NewMemQueue() *MemQueue {
	return &MemQueue{msgs: make(chan types.DeriveRequest, 128)}
}

func (q *MemQueue) Publish(_ context.Context, req types.DeriveRequest) error {
	if q.PublishErr != nil {
		return q.PublishErr
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return queue.ErrClosed
	}
	q.published = append(q.published, req)
	q.msgs <- req

	return nil
}

func (q *MemQueue) Subscribe(ctx context.Context, msgChan chan<- types.DeriveRequest, wg *sync.WaitGroup) error {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-q.msgs:
			select {
			case msgChan <- req:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// Published returns all requests published so far.
func (q *MemQueue) Published() []types.DeriveRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]types.DeriveRequest(nil), q.published...)
}

func (q *MemQueue) Reconnect() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = false
	return nil
}

func (q *MemQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
