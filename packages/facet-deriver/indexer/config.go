package indexer

import (
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/flags"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/utils"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/db"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/derivation"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue/rabbitmq"
)

type Config struct {
	Derivation    *derivation.Config
	RetryInterval time.Duration
	MaxRetries    uint64
	Workers       uint64
	DBMigrate     bool
	OpenQueueFunc func() (queue.Queue, error)
	OpenDBFunc    func() (*db.DB, error)
}

// NewConfigFromCliContext creates a new config instance from command line flags.
func NewConfigFromCliContext(c *cli.Context) (*Config, error) {
	derivationCfg, err := utils.DerivationConfigFromCli(c)
	if err != nil {
		return nil, err
	}

	queueOpts := utils.QueueOptsFromCli(c)
	if queueOpts == nil {
		return nil, errors.New("indexer requires a queue host")
	}

	dbCfg := utils.DBConfigFromCli(c)
	if dbCfg == nil {
		return nil, errors.New("indexer requires a database host")
	}

	workers := c.Uint64(flags.IndexerWorkers.Name)
	if workers == 0 {
		workers = 1
	}

	return &Config{
		Derivation:    derivationCfg,
		RetryInterval: c.Duration(flags.BackOffRetryInterval.Name),
		MaxRetries:    c.Uint64(flags.BackOffMaxRetries.Name),
		Workers:       workers,
		DBMigrate:     c.Bool(flags.DatabaseMigrate.Name),
		OpenQueueFunc: func() (queue.Queue, error) {
			return rabbitmq.NewRabbitMQ(*queueOpts)
		},
		OpenDBFunc: func() (*db.DB, error) {
			return db.OpenMySQL(dbCfg)
		},
	}, nil
}
