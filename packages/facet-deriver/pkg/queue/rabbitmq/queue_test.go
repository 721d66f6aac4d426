package rabbitmq

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/testutils"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

func TestPublishSubscribe(t *testing.T) {
	if testutils.ShouldSkipContainerTests() {
		t.Skip("Skipping container tests")
	}

	host, port := testutils.StartRabbitMQ(t)

	q, err := NewRabbitMQ(queue.NewQueueOpts{
		Username:      testutils.RabbitMQUser,
		Password:      testutils.RabbitMQPass,
		Host:          host,
		Port:          port,
		PrefetchCount: 1,
	})
	require.Nil(t, err)
	defer q.Close()

	req := types.DeriveRequest{L1TxHash: common.HexToHash("0x46"), WithReceipt: true}
	require.Nil(t, q.Publish(context.Background(), req))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		wg      sync.WaitGroup
		msgChan = make(chan types.DeriveRequest, 1)
		errCh   = make(chan error, 1)
	)
	go func() { errCh <- q.Subscribe(ctx, msgChan, &wg) }()

	select {
	case received := <-msgChan:
		require.Equal(t, req, received)
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}

	cancel()
	require.Nil(t, <-errCh)
	wg.Wait()

	require.Nil(t, q.Reconnect())
	require.Nil(t, q.Publish(context.Background(), req))
}
