package indexer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/db"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/derivation"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/facet"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/metrics"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/repo"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/rpc"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

// Deriver derives deposit transactions of L1 Facet transactions.
type Deriver interface {
	Derive(ctx context.Context, l1TxHash common.Hash, withReceipt bool) (*types.DerivedDeposit, error)
}

// DepositSaver persists derived deposits.
type DepositSaver interface {
	Save(ctx context.Context, derived *types.DerivedDeposit) error
}

// Indexer consumes derivation requests from the queue, derives the requested
// deposits and persists them.
type Indexer struct {
	deriver Deriver
	repo    DepositSaver
	queue   queue.Queue
	client  *rpc.Client

	msgCh chan types.DeriveRequest

	retryInterval time.Duration
	maxRetries    uint64
	workers       uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (i *Indexer) InitFromCli(ctx context.Context, c *cli.Context) error {
	cfg, err := NewConfigFromCliContext(c)
	if err != nil {
		return err
	}

	return InitFromConfig(ctx, i, cfg)
}

func InitFromConfig(ctx context.Context, i *Indexer, cfg *Config) error {
	svc, client, err := derivation.NewServiceFromConfig(ctx, cfg.Derivation)
	if err != nil {
		return err
	}
	i.client = client

	database, err := cfg.OpenDBFunc()
	if err != nil {
		return err
	}

	if cfg.DBMigrate {
		if err := db.Migrate(ctx, database); err != nil {
			return err
		}
	}

	depositRepo, err := repo.NewDepositRepository(database)
	if err != nil {
		return err
	}

	q, err := cfg.OpenQueueFunc()
	if err != nil {
		return err
	}

	i.init(ctx, svc, depositRepo, q, cfg)

	return nil
}

func (i *Indexer) init(ctx context.Context, deriver Deriver, saver DepositSaver, q queue.Queue, cfg *Config) {
	i.deriver = deriver
	i.repo = saver
	i.queue = q
	i.retryInterval = cfg.RetryInterval
	i.maxRetries = cfg.MaxRetries
	i.workers = cfg.Workers
	i.msgCh = make(chan types.DeriveRequest, cfg.Workers)
	i.ctx, i.cancel = context.WithCancel(ctx)
}

func (i *Indexer) Name() string {
	return "indexer"
}

func (i *Indexer) Start() error {
	i.wg.Add(1)
	go i.subscribe()

	for w := uint64(0); w < i.workers; w++ {
		i.wg.Add(1)
		go i.work()
	}

	return nil
}

func (i *Indexer) Close(ctx context.Context) {
	i.cancel()

	i.wg.Wait()

	i.queue.Close()

	if i.client != nil {
		i.client.Close()
	}
}

func (i *Indexer) backOff() backoff.BackOff {
	return backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(i.retryInterval), i.maxRetries),
		i.ctx,
	)
}

// subscribe keeps the queue subscription alive, reconnecting when the broker drops it.
func (i *Indexer) subscribe() {
	defer i.wg.Done()

	err := backoff.Retry(func() error {
		err := i.queue.Subscribe(i.ctx, i.msgCh, &i.wg)
		if err == nil || i.ctx.Err() != nil {
			return nil
		}

		slog.Error("queue subscription error", "error", err)

		if err := i.queue.Reconnect(); err != nil {
			slog.Error("queue reconnect error", "error", err)
			return err
		}

		return err
	}, i.backOff())
	if err != nil {
		slog.Error("queue subscription stopped", "error", err)
	}
}

func (i *Indexer) work() {
	defer i.wg.Done()

	for {
		select {
		case <-i.ctx.Done():
			return
		case req := <-i.msgCh:
			if err := i.handle(req); err != nil {
				metrics.IndexerMessagesFailed.Inc()
				slog.Error("failed to index derivation request", "l1TxHash", req.L1TxHash, "error", err)
				continue
			}
			metrics.IndexerMessagesProcessed.Inc()
		}
	}
}

// handle derives and persists the requested deposit. Chain access failures are retried,
// any other derivation failure is final.
func (i *Indexer) handle(req types.DeriveRequest) error {
	var derived *types.DerivedDeposit

	err := backoff.Retry(func() error {
		d, err := i.deriver.Derive(i.ctx, req.L1TxHash, req.WithReceipt)
		if err != nil {
			if errors.Is(err, facet.ErrChainAccess) {
				slog.Warn("retrying derivation", "l1TxHash", req.L1TxHash, "error", err)
				return err
			}
			return backoff.Permanent(err)
		}
		derived = d
		return nil
	}, i.backOff())
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return permanent.Err
		}
		return err
	}

	if err := i.repo.Save(i.ctx, derived); err != nil {
		return err
	}

	slog.Info("indexed derived deposit", "l1TxHash", derived.L1TxHash, "l2TxHash", derived.L2TxHash)

	return nil
}
