package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/flags"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/db"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/derivation"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/deposit"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/rpc"
)

// DerivationConfigFromCli creates the derivation service config from the common flags.
func DerivationConfigFromCli(c *cli.Context) (*derivation.Config, error) {
	callIndex := c.Uint(flags.CallIndex.Name)
	if callIndex > math.MaxUint32 {
		return nil, fmt.Errorf("invalid %s: %d", flags.CallIndex.Name, callIndex)
	}

	blockTime := c.Uint64(flags.BlockTime.Name)
	if blockTime == 0 {
		return nil, fmt.Errorf("invalid %s: must be positive", flags.BlockTime.Name)
	}

	return &derivation.Config{
		RPC: &rpc.ClientConfig{
			L1Endpoint:  c.String(flags.L1RPCUrl.Name),
			L2Endpoint:  c.String(flags.L2RPCUrl.Name),
			Timeout:     c.Duration(flags.RPCTimeout.Name),
			L2CacheSize: c.Int(flags.L2CacheSize.Name),
		},
		BlockTime:    blockTime,
		SourceDomain: deposit.UserDepositSourceDomain,
		CallIndex:    uint32(callIndex),
	}, nil
}

// QueueOptsFromCli returns the queue options, or nil when no queue host is configured.
func QueueOptsFromCli(c *cli.Context) *queue.NewQueueOpts {
	if c.String(flags.QueueHost.Name) == "" {
		return nil
	}

	return &queue.NewQueueOpts{
		Username:      c.String(flags.QueueUsername.Name),
		Password:      c.String(flags.QueuePassword.Name),
		Host:          c.String(flags.QueueHost.Name),
		Port:          strconv.FormatUint(c.Uint64(flags.QueuePort.Name), 10),
		QueueName:     c.String(flags.QueueName.Name),
		PrefetchCount: c.Uint64(flags.QueuePrefetchCount.Name),
	}
}

// DBConfigFromCli returns the database config, or nil when no database host is configured.
func DBConfigFromCli(c *cli.Context) *db.Config {
	if c.String(flags.DatabaseHost.Name) == "" {
		return nil
	}

	return &db.Config{
		Host:            c.String(flags.DatabaseHost.Name),
		Name:            c.String(flags.DatabaseName.Name),
		User:            c.String(flags.DatabaseUsername.Name),
		Password:        c.String(flags.DatabasePassword.Name),
		MaxIdleConns:    c.Uint64(flags.DatabaseMaxIdleConns.Name),
		MaxOpenConns:    c.Uint64(flags.DatabaseMaxOpenConns.Name),
		ConnMaxLifetime: c.Uint64(flags.DatabaseConnMaxLifetime.Name),
	}
}
