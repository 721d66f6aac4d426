package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

var (
	ErrClosed = errors.New("queue connection closed")
)

const DefaultQueueName = "facet-deriver-requests"

type Queue interface {
	Close()
	Reconnect() error
	Publish(ctx context.Context, req types.DeriveRequest) error
	Subscribe(ctx context.Context, msgChan chan<- types.DeriveRequest, wg *sync.WaitGroup) error
}

type NewQueueOpts struct {
	Username      string
	Password      string
	Host          string
	Port          string
	QueueName     string
	PrefetchCount uint64
}
