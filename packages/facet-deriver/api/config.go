package api

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/flags"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/utils"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/db"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/derivation"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue/rabbitmq"
)

type Config struct {
	Derivation  *derivation.Config
	CORSOrigins []string
	HTTPPort    uint64
	DBMigrate   bool

	// OpenQueueFunc and OpenDBFunc are nil when the queue or the database is not configured.
	OpenQueueFunc func() (queue.Queue, error)
	OpenDBFunc    func() (*db.DB, error)
}

// NewConfigFromCliContext creates a new config instance from command line flags.
func NewConfigFromCliContext(c *cli.Context) (*Config, error) {
	derivationCfg, err := utils.DerivationConfigFromCli(c)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Derivation:  derivationCfg,
		CORSOrigins: strings.Split(c.String(flags.CORSOrigins.Name), ","),
		HTTPPort:    c.Uint64(flags.HTTPPort.Name),
		DBMigrate:   c.Bool(flags.DatabaseMigrate.Name),
	}

	if opts := utils.QueueOptsFromCli(c); opts != nil {
		cfg.OpenQueueFunc = func() (queue.Queue, error) {
			return rabbitmq.NewRabbitMQ(*opts)
		}
	}

	if dbCfg := utils.DBConfigFromCli(c); dbCfg != nil {
		cfg.OpenDBFunc = func() (*db.DB, error) {
			return db.OpenMySQL(dbCfg)
		}
	}

	return cfg, nil
}
